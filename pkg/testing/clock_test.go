package testing

import (
	"slices"
	"testing"
	"time"

	"github.com/go-drift/trellis/pkg/graphics"
	"github.com/go-drift/trellis/pkg/screen"
	"github.com/go-drift/trellis/pkg/testing/internal/testbed"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	clk.Advance(100 * time.Millisecond)
	if elapsed := clk.Now().Sub(start); elapsed != 100*time.Millisecond {
		t.Errorf("expected 100ms elapsed, got %v", elapsed)
	}
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)
	if !clk.Now().Equal(target) {
		t.Errorf("expected %v, got %v", target, clk.Now())
	}
}

func TestScreenTester_TooltipFollowsClock(t *testing.T) {
	tester := NewScreenTesterWithT(t)
	box := testbed.NewLayoutBox(tester.Screen(), graphics.Pt(80, 40), graphics.RGB(0, 128, 0))
	box.SetPosition(graphics.Pt(10, 10))
	box.SetTooltip("Green box")
	tester.Pump()

	tester.MoveTo(graphics.Pt(30, 20))
	tester.Pump()
	if slices.Contains(tester.Frame().Texts(), "Green box") {
		t.Fatal("tooltip shown before the delay")
	}

	tester.Clock().Advance(screen.TooltipDelay + 100*time.Millisecond)
	tester.Pump()
	if !slices.Contains(tester.Frame().Texts(), "Green box") {
		t.Error("tooltip not shown after the delay")
	}
}
