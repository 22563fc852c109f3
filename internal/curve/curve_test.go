package curve_test

import (
	"testing"

	"mutablerig/internal/curve"
	"mutablerig/internal/rig"
)

func mustCurve(t *testing.T, joint, channel string, interp curve.Interpolation, keys ...curve.Key) *curve.Curve {
	t.Helper()
	c, err := curve.New(joint, channel, interp, keys)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestEvaluateClampsOutsideRange(t *testing.T) {
	c := mustCurve(t, "hips", "tx", curve.InterpLinear,
		curve.Key{Frame: 10, Value: 1},
		curve.Key{Frame: 20, Value: 3},
	)
	if got := c.Evaluate(0); got != 1 {
		t.Fatalf("expected clamp to first key, got %v", got)
	}
	if got := c.Evaluate(100); got != 3 {
		t.Fatalf("expected clamp to last key, got %v", got)
	}
}

func TestEvaluateLinearInterpolation(t *testing.T) {
	c := mustCurve(t, "hips", "tx", curve.InterpLinear,
		curve.Key{Frame: 0, Value: 0},
		curve.Key{Frame: 10, Value: 5},
	)
	if got := c.Evaluate(4); got != 2 {
		t.Fatalf("expected 2 at frame 4, got %v", got)
	}
}

func TestEvaluateStepHoldsPreviousKey(t *testing.T) {
	c := mustCurve(t, "hips", "vis", curve.InterpStep,
		curve.Key{Frame: 0, Value: 0},
		curve.Key{Frame: 10, Value: 1},
	)
	if got := c.Evaluate(9.9); got != 0 {
		t.Fatalf("expected step hold, got %v", got)
	}
	if got := c.Evaluate(10); got != 1 {
		t.Fatalf("expected key value at key frame, got %v", got)
	}
}

func TestNewSortsKeysAndRejectsDuplicates(t *testing.T) {
	c := mustCurve(t, "hips", "tx", curve.InterpLinear,
		curve.Key{Frame: 10, Value: 1},
		curve.Key{Frame: 0, Value: 0},
	)
	keys := c.Keys()
	if keys[0].Frame != 0 || keys[1].Frame != 10 {
		t.Fatalf("expected sorted keys, got %v", keys)
	}

	_, err := curve.New("hips", "tx", curve.InterpLinear, []curve.Key{
		{Frame: 5, Value: 1},
		{Frame: 5, Value: 2},
	})
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestParseInterpolation(t *testing.T) {
	if interp, err := curve.ParseInterpolation(""); err != nil || interp != curve.InterpLinear {
		t.Fatalf("expected linear default, got %v %v", interp, err)
	}
	if _, err := curve.ParseInterpolation("bezier"); err == nil {
		t.Fatal("expected error for unknown interpolation")
	}
}

func TestSamplerOverridesKeyedChannelsOnly(t *testing.T) {
	r, err := rig.New("rig_a", "bob|rig_a", "bob0", []*rig.Joint{
		rig.NewJoint("hips", "", map[string]float64{"ty": 1.5}),
	})
	if err != nil {
		t.Fatalf("rig.New failed: %v", err)
	}

	set, err := curve.NewSet([]*curve.Curve{
		mustCurve(t, "hips", "tx", curve.InterpLinear,
			curve.Key{Frame: 0, Value: 0},
			curve.Key{Frame: 10, Value: 10},
		),
	})
	if err != nil {
		t.Fatalf("NewSet failed: %v", err)
	}

	sampler := curve.NewSampler(map[string]*curve.Set{"rig_a": set})
	pose, err := sampler.Sample(r, 5)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if got := pose.Joints["hips"]["tx"]; got != 5 {
		t.Fatalf("expected keyed channel sampled, got %v", got)
	}
	if got := pose.Joints["hips"]["ty"]; got != 1.5 {
		t.Fatalf("expected unkeyed channel from rig state, got %v", got)
	}
}

func TestSamplerFallsBackToRigStateWithoutCurves(t *testing.T) {
	r, err := rig.New("rig_b", "bob|rig_b", "bob1", []*rig.Joint{
		rig.NewJoint("hips", "", map[string]float64{"tx": 7}),
	})
	if err != nil {
		t.Fatalf("rig.New failed: %v", err)
	}

	sampler := curve.NewSampler(nil)
	pose, err := sampler.Sample(r, 42)
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if got := pose.Joints["hips"]["tx"]; got != 7 {
		t.Fatalf("expected current state fallback, got %v", got)
	}
	if sampler.HasCurves("rig_b") {
		t.Fatal("expected HasCurves=false for rig without curves")
	}
}

func TestNewSetRejectsDuplicateChannel(t *testing.T) {
	_, err := curve.NewSet([]*curve.Curve{
		mustCurve(t, "hips", "tx", curve.InterpLinear, curve.Key{Frame: 0, Value: 0}),
		mustCurve(t, "hips", "tx", curve.InterpLinear, curve.Key{Frame: 1, Value: 1}),
	})
	if err == nil {
		t.Fatal("expected duplicate channel error")
	}
}
