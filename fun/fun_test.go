package fun

import (
	"math"
	"testing"
)

// TestNewFromFuncEval 函数验证自适应构造后的逐点取值精度。
func TestNewFromFuncEval(t *testing.T) {
	f, err := NewFromFunc(func(x float64) float64 { return math.Sin(math.Pi * x) }, []float64{-1, 1}, 1e-12)
	if err != nil {
		t.Fatalf("NewFromFunc failed: %v", err)
	}
	for _, x := range []float64{-1, -0.7, -0.2, 0, 0.4, 0.9, 1} {
		want := math.Sin(math.Pi * x)
		if got := f.Eval(x); math.Abs(got-want) > 1e-10 {
			t.Errorf("value at x=%v: got %v, expected %v", x, got, want)
		}
	}
	if f.NumPieces() != 1 {
		t.Errorf("piece count incorrect. Got %d, expected 1", f.NumPieces())
	}
	// 光滑函数的自适应长度应被截断到远低于最大阶梯
	if f.Length() > 64 {
		t.Errorf("adaptive length too large for smooth function: %d", f.Length())
	}
}

// TestNewFromFuncPiecewise 函数验证多断点构造与片段相邻性。
func TestNewFromFuncPiecewise(t *testing.T) {
	f, err := NewFromFunc(math.Abs, []float64{-1, 0, 1}, 1e-12)
	if err != nil {
		t.Fatalf("NewFromFunc failed: %v", err)
	}
	if f.NumPieces() != 2 {
		t.Fatalf("piece count incorrect. Got %d, expected 2", f.NumPieces())
	}
	// |x|在断点两侧均为线性，分段表示应精确
	for _, x := range []float64{-0.8, -0.1, 0.3, 1} {
		if got := f.Eval(x); math.Abs(got-math.Abs(x)) > 1e-11 {
			t.Errorf("value at x=%v: got %v, expected %v", x, got, math.Abs(x))
		}
	}
	dom := f.Domain()
	if len(dom) != 3 || dom[1] != 0 {
		t.Errorf("domain incorrect: %v", dom)
	}
}

// TestRestrict 函数验证子区间限制后的取值一致性。
func TestRestrict(t *testing.T) {
	f, err := NewFromFunc(func(x float64) float64 { return math.Exp(x) }, []float64{-1, 1}, 1e-12)
	if err != nil {
		t.Fatalf("NewFromFunc failed: %v", err)
	}
	g, err := f.Restrict(-0.5, 0.25)
	if err != nil {
		t.Fatalf("Restrict failed: %v", err)
	}
	dom := g.Domain()
	if dom[0] != -0.5 || dom[len(dom)-1] != 0.25 {
		t.Errorf("restricted domain incorrect: %v", dom)
	}
	for _, x := range []float64{-0.5, -0.1, 0.2, 0.25} {
		if got := g.Eval(x); math.Abs(got-math.Exp(x)) > 1e-9 {
			t.Errorf("restricted value at x=%v: got %v, expected %v", x, got, math.Exp(x))
		}
	}
	// 定义域外的限制被拒绝
	if _, err := f.Restrict(-2, 0); err == nil {
		t.Error("Restrict outside domain should fail")
	}
}

// TestMergeSmooth 函数验证光滑函数的相邻片段可以合并为单片段。
func TestMergeSmooth(t *testing.T) {
	f, err := NewFromFunc(func(x float64) float64 { return math.Cos(2 * x) }, []float64{-1, 0, 1}, 1e-12)
	if err != nil {
		t.Fatalf("NewFromFunc failed: %v", err)
	}
	if !f.Merge(1e-12) {
		t.Fatal("smooth function should merge")
	}
	if f.NumPieces() != 1 {
		t.Fatalf("piece count after merge incorrect. Got %d, expected 1", f.NumPieces())
	}
	for _, x := range []float64{-0.9, 0, 0.5} {
		if got := f.Eval(x); math.Abs(got-math.Cos(2*x)) > 1e-10 {
			t.Errorf("merged value at x=%v: got %v, expected %v", x, got, math.Cos(2*x))
		}
	}
}

// TestMergeNonSmooth 函数验证不光滑函数合并失败且保持原片段不变。
func TestMergeNonSmooth(t *testing.T) {
	f, err := NewFromFunc(math.Abs, []float64{-1, 0, 1}, 1e-12)
	if err != nil {
		t.Fatalf("NewFromFunc failed: %v", err)
	}
	if f.Merge(1e-12) {
		t.Error("|x| should not merge into a single smooth piece")
	}
	if f.NumPieces() != 2 {
		t.Errorf("failed merge must keep pieces. Got %d, expected 2", f.NumPieces())
	}
}

// TestMergeFullLadder 函数验证合并与自适应构造走同一条采样阶梯：
// 仅在阶梯顶端分辨率下才收敛的函数也能成功合并。
func TestMergeFullLadder(t *testing.T) {
	osc := func(x float64) float64 { return math.Sin(1500 * x) }
	f, err := NewFromFunc(osc, []float64{-1, 0, 1}, 1e-10)
	if err != nil {
		t.Fatalf("NewFromFunc failed: %v", err)
	}
	if !f.Merge(1e-10) {
		t.Fatal("highly oscillatory but smooth function should merge at the top of the ladder")
	}
	if f.NumPieces() != 1 {
		t.Fatalf("piece count after merge incorrect. Got %d, expected 1", f.NumPieces())
	}
	for _, x := range []float64{-0.37, 0.11, 0.82} {
		if got := f.Eval(x); math.Abs(got-osc(x)) > 1e-7 {
			t.Errorf("merged value at x=%v: got %v, expected %v", x, got, osc(x))
		}
	}
}

// TestSimplify 函数验证尾部截断不破坏取值精度。
func TestSimplify(t *testing.T) {
	values := make([][]float64, 1)
	n := 64
	f0 := func(x float64) float64 { return 1 / (1 + 25*x*x) }
	vals := make([]float64, n)
	for j, xj := range chebptsForTest(n) {
		vals[j] = f0(xj)
	}
	values[0] = vals
	f, err := NewFromValues([]float64{-1, 1}, values)
	if err != nil {
		t.Fatalf("NewFromValues failed: %v", err)
	}
	before := f.Length()
	f.Simplify(1e-4)
	if f.Length() >= before {
		t.Errorf("simplify did not shorten representation: %d -> %d", before, f.Length())
	}
	for _, x := range []float64{-0.9, 0, 0.3} {
		if got := f.Eval(x); math.Abs(got-f0(x)) > 5e-3 {
			t.Errorf("simplified value at x=%v drifted: got %v, expected %v", x, got, f0(x))
		}
	}
}

// chebptsForTest 测试辅助：[-1,1]上的第二类配点
func chebptsForTest(n int) []float64 {
	x := make([]float64, n)
	for j := 0; j < n; j++ {
		x[j] = -math.Cos(float64(j) * math.Pi / float64(n-1))
	}
	return x
}
