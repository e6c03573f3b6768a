package main

import (
	"testing"

	"github.com/randomizedcoder/syncbench/internal/queue"
)

func TestShare_CoversEveryTask(t *testing.T) {
	for _, tc := range []struct{ iterations, producers int }{
		{10, 1}, {10, 3}, {10, 4}, {7, 8}, {1000, 7},
	} {
		total := 0
		for id := 1; id <= tc.producers; id++ {
			total += share(tc.iterations, tc.producers, id)
		}
		if total != tc.iterations {
			t.Errorf("share(%d, %d): producers push %d tasks", tc.iterations, tc.producers, total)
		}
	}
}

func TestFanIn_RunsEveryTask(t *testing.T) {
	for _, tc := range []struct {
		name string
		make func(producers int) queue.Queue[writeTask]
	}{
		{"unbounded", func(int) queue.Queue[writeTask] { return queue.NewUnbounded[writeTask](4) }},
		{"channel", func(int) queue.Queue[writeTask] { return queue.NewChannel[writeTask](4) }},
		{"sharded", func(p int) queue.Queue[writeTask] {
			q, err := queue.NewSharded[writeTask](4, p)
			if err != nil {
				t.Fatal(err)
			}
			return q
		}},
	} {
		// 10 tasks over 4 producers does not divide evenly.
		_, ran, err := fanIn(tc.make(4), 10, 3, 4)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if ran != 10 {
			t.Errorf("%s: expected 10 tasks run, got %d", tc.name, ran)
		}
	}
}

func TestPingPong_RunsEveryTask(t *testing.T) {
	_, ran, err := pingPong(queue.NewRingBuffer[writeTask](4), 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	if ran != 10 {
		t.Errorf("expected 10 tasks run, got %d", ran)
	}
}
