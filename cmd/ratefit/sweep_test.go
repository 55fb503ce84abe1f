package main

import (
	"testing"

	"github.com/pthm-cable/kinetics/config"
)

func TestSweepEvaluate(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	sweep := NewSweep(cfg, 300, []int64{1, 2})

	hot, err := sweep.Evaluate(100, 40)
	if err != nil {
		t.Fatal(err)
	}
	if hot.FinalFraction <= 0 || hot.RateK <= 0 {
		t.Errorf("hot run did not react: %+v", hot)
	}

	cold, err := sweep.Evaluate(50, 40)
	if err != nil {
		t.Fatal(err)
	}
	if cold.FinalFraction != 0 || cold.RateK != 0 {
		t.Errorf("cold run reacted: %+v", cold)
	}
}
