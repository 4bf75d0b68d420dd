package semigroup

import "testing"

func TestCandidates(t *testing.T) {
	p := DefaultPrefs()
	p.DimensionValues = []int{17, 33, 65, 129}

	// 低于下界的候选被剔除
	got := candidates(&p, 33)
	want := []int{33, 65, 129}
	if len(got) != len(want) {
		t.Fatalf("候选数量不正确: 期望 %v, 实际 %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("候选[%d]不正确: 期望 %d, 实际 %d", i, want[i], got[i])
		}
	}

	// 下界落在阶梯间隙时从上一级开始
	got = candidates(&p, 34)
	if got[0] != 65 {
		t.Errorf("间隙下界起点不正确: 期望 65, 实际 %d", got[0])
	}

	// 阶梯全部被剔除时回退为下界本身
	got = candidates(&p, 500)
	if len(got) != 1 || got[0] != 500 {
		t.Errorf("回退候选不正确: 期望 [500], 实际 %v", got)
	}
}

func TestNextDim(t *testing.T) {
	ladder := []int{17, 33, 65}
	if next, ok := nextDim(ladder, 17); !ok || next != 33 {
		t.Errorf("推进不正确: 期望 (33,true), 实际 (%d,%v)", next, ok)
	}
	if next, ok := nextDim(ladder, 20); !ok || next != 33 {
		t.Errorf("间隙推进不正确: 期望 (33,true), 实际 (%d,%v)", next, ok)
	}
	if _, ok := nextDim(ladder, 65); ok {
		t.Error("阶梯顶端应当报告耗尽")
	}
}
