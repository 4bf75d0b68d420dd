package fun

import (
	"errors"
	"fmt"
	"math"

	"github.com/gokulhari/chebfun/maths"
)

// Piece 单个子区间上的Chebyshev级数表示
type Piece struct {
	A, B   float64   // 子区间端点（A < B）
	Coeffs []float64 // Chebyshev系数（T_0起，非空）
}

// Fun 分段Chebyshev函数表示
// 片段有序相邻：pieces[i].B == pieces[i+1].A，整体覆盖连续区间
type Fun struct {
	pieces []Piece
}

// New 从片段列表构建Fun（校验有序性与相邻性）
func New(pieces []Piece) (*Fun, error) {
	if len(pieces) == 0 {
		return nil, errors.New("fun: no pieces")
	}
	for i, p := range pieces {
		if !(p.A < p.B) {
			return nil, fmt.Errorf("fun: piece %d has invalid interval [%v, %v]", i, p.A, p.B)
		}
		if len(p.Coeffs) == 0 {
			return nil, fmt.Errorf("fun: piece %d has no coefficients", i)
		}
		if i > 0 && pieces[i-1].B != p.A {
			return nil, fmt.Errorf("fun: pieces %d and %d are not contiguous", i-1, i)
		}
	}
	cp := make([]Piece, len(pieces))
	for i, p := range pieces {
		cp[i] = Piece{A: p.A, B: p.B, Coeffs: append([]float64(nil), p.Coeffs...)}
	}
	return &Fun{pieces: cp}, nil
}

// NewFromCoeffs 从断点序列和每段系数构建Fun
func NewFromCoeffs(breakpoints []float64, coeffs [][]float64) (*Fun, error) {
	if len(breakpoints) < 2 || len(coeffs) != len(breakpoints)-1 {
		return nil, fmt.Errorf("fun: breakpoint/coefficient count mismatch: %d breakpoints, %d pieces", len(breakpoints), len(coeffs))
	}
	pieces := make([]Piece, len(coeffs))
	for i := range coeffs {
		pieces[i] = Piece{A: breakpoints[i], B: breakpoints[i+1], Coeffs: coeffs[i]}
	}
	return New(pieces)
}

// NewFromValues 从断点序列和每段第二类Chebyshev配点值构建Fun
func NewFromValues(breakpoints []float64, values [][]float64) (*Fun, error) {
	coeffs := make([][]float64, len(values))
	for i, v := range values {
		if len(v) == 0 {
			return nil, fmt.Errorf("fun: piece %d has no values", i)
		}
		coeffs[i] = maths.Vals2Coeffs(v)
	}
	return NewFromCoeffs(breakpoints, coeffs)
}

// Domain 返回断点序列（含两端）
func (f *Fun) Domain() []float64 {
	dom := make([]float64, len(f.pieces)+1)
	for i, p := range f.pieces {
		dom[i] = p.A
	}
	dom[len(f.pieces)] = f.pieces[len(f.pieces)-1].B
	return dom
}

// NumPieces 返回片段数量
func (f *Fun) NumPieces() int { return len(f.pieces) }

// Length 返回总自由度（各片段系数长度之和）
func (f *Fun) Length() int {
	n := 0
	for _, p := range f.pieces {
		n += len(p.Coeffs)
	}
	return n
}

// PieceLength 返回第i个片段的系数长度
func (f *Fun) PieceLength(i int) int { return len(f.pieces[i].Coeffs) }

// PieceCoeffs 返回第i个片段的系数副本
func (f *Fun) PieceCoeffs(i int) []float64 {
	return append([]float64(nil), f.pieces[i].Coeffs...)
}

// Eval 计算f(x)：定位所属片段后做Clenshaw递推
// 定义域外的点由最近片段外推
func (f *Fun) Eval(x float64) float64 {
	p := &f.pieces[0]
	for i := range f.pieces {
		if x <= f.pieces[i].B || i == len(f.pieces)-1 {
			p = &f.pieces[i]
			break
		}
	}
	// 映射到标准区间[-1,1]
	t := (2*x - p.A - p.B) / (p.B - p.A)
	return maths.Clenshaw(p.Coeffs, t)
}

// Sample 返回第i个片段在n点第二类Chebyshev网格上的值（升序）
func (f *Fun) Sample(i, n int) []float64 {
	p := f.pieces[i]
	x := maths.Chebpts(n, p.A, p.B)
	v := make([]float64, n)
	for j, xj := range x {
		v[j] = f.Eval(xj)
	}
	return v
}

// VScale 返回函数值的最大幅值估计（各片段配点值的最大绝对值）
func (f *Fun) VScale() float64 {
	s := 0.0
	for _, p := range f.pieces {
		for _, v := range maths.Coeffs2Vals(p.Coeffs) {
			if a := math.Abs(v); a > s {
				s = a
			}
		}
	}
	return s
}

// Restrict 限制到子区间[a,b]，重叠片段在交集上重新展开
func (f *Fun) Restrict(a, b float64) (*Fun, error) {
	dom := f.Domain()
	if !(a < b) || a < dom[0] || b > dom[len(dom)-1] {
		return nil, fmt.Errorf("fun: restrict interval [%v, %v] outside domain [%v, %v]", a, b, dom[0], dom[len(dom)-1])
	}
	var pieces []Piece
	for _, p := range f.pieces {
		lo, hi := math.Max(p.A, a), math.Min(p.B, b)
		if !(lo < hi) {
			continue
		}
		n := len(p.Coeffs)
		if n < 2 {
			n = 2
		}
		x := maths.Chebpts(n, lo, hi)
		v := make([]float64, n)
		for j, xj := range x {
			v[j] = f.Eval(xj)
		}
		pieces = append(pieces, Piece{A: lo, B: hi, Coeffs: maths.Vals2Coeffs(v)})
	}
	return New(pieces)
}

// Simplify 按阈值截断各片段的尾部系数（自适应压缩）
func (f *Fun) Simplify(tol float64) {
	scale := f.VScale()
	if scale == 0 {
		scale = 1
	}
	for i := range f.pieces {
		cut := maths.TailCutoff(f.pieces[i].Coeffs, tol*scale)
		f.pieces[i].Coeffs = f.pieces[i].Coeffs[:cut]
	}
}

// Merge 尝试将全部片段合并为整个区间上的单一光滑片段
// 在合并网格上重新采样并做收敛判定，成功返回true；失败保持原状
func (f *Fun) Merge(tol float64) bool {
	if len(f.pieces) < 2 {
		return true
	}
	a := f.pieces[0].A
	b := f.pieces[len(f.pieces)-1].B
	scale := f.VScale()
	if scale == 0 {
		scale = 1
	}
	for _, n := range sampleLadder {
		x := maths.Chebpts(n, a, b)
		v := make([]float64, n)
		for j, xj := range x {
			v[j] = f.Eval(xj)
		}
		coeffs := maths.Vals2Coeffs(v)
		if maths.Happy(coeffs, tol*scale) {
			cut := maths.TailCutoff(coeffs, tol*scale)
			f.pieces = []Piece{{A: a, B: b, Coeffs: coeffs[:cut]}}
			return true
		}
	}
	return false
}

// Copy 深拷贝
func (f *Fun) Copy() *Fun {
	pieces := make([]Piece, len(f.pieces))
	for i, p := range f.pieces {
		pieces[i] = Piece{A: p.A, B: p.B, Coeffs: append([]float64(nil), p.Coeffs...)}
	}
	return &Fun{pieces: pieces}
}

// MaxPieceLength 返回各片段系数长度的最大值（驱动层确定最小可用分辨率）
func (f *Fun) MaxPieceLength() int {
	n := 0
	for _, p := range f.pieces {
		if len(p.Coeffs) > n {
			n = len(p.Coeffs)
		}
	}
	return n
}

// String 格式化输出
func (f *Fun) String() string {
	dom := f.Domain()
	return fmt.Sprintf("Fun on [%v, %v], %d piece(s), length %d", dom[0], dom[len(dom)-1], len(f.pieces), f.Length())
}
