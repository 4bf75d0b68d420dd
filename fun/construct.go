package fun

import (
	"fmt"
	"math"

	"github.com/gokulhari/chebfun/maths"
)

// 自适应构造的采样阶梯（逐级加密直至尾部收敛）
var sampleLadder = []int{17, 33, 65, 129, 257, 513, 1025, 2049}

// NewFromFunc 在断点序列dom上自适应构造f的分段Chebyshev表示
// 每个子区间独立加密采样，尾部系数衰减到tol*幅值以下后截断
// 阶梯耗尽仍未收敛时返回错误（输入函数对该容差而言不可解析）
func NewFromFunc(f func(float64) float64, dom []float64, tol float64) (*Fun, error) {
	if len(dom) < 2 {
		return nil, fmt.Errorf("fun: need at least 2 breakpoints, got %d", len(dom))
	}
	for i := 1; i < len(dom); i++ {
		if !(dom[i-1] < dom[i]) {
			return nil, fmt.Errorf("fun: breakpoints must be strictly increasing at index %d", i)
		}
	}
	if tol <= 0 {
		return nil, fmt.Errorf("fun: tolerance must be positive, got %v", tol)
	}
	pieces := make([]Piece, len(dom)-1)
	for i := 0; i < len(dom)-1; i++ {
		a, b := dom[i], dom[i+1]
		var coeffs []float64
		happy := false
		for _, n := range sampleLadder {
			x := maths.Chebpts(n, a, b)
			v := make([]float64, n)
			scale := 0.0
			for j, xj := range x {
				v[j] = f(xj)
				if av := math.Abs(v[j]); av > scale {
					scale = av
				}
			}
			if scale == 0 {
				scale = 1
			}
			coeffs = maths.Vals2Coeffs(v)
			if maths.Happy(coeffs, tol*scale) {
				coeffs = coeffs[:maths.TailCutoff(coeffs, tol*scale)]
				happy = true
				break
			}
		}
		if !happy {
			return nil, fmt.Errorf("fun: function did not resolve on [%v, %v] to tolerance %v", a, b, tol)
		}
		pieces[i] = Piece{A: a, B: b, Coeffs: coeffs}
	}
	return &Fun{pieces: pieces}, nil
}

// Constant 构造区间dom上的常值函数
func Constant(c float64, dom []float64) (*Fun, error) {
	pieces := make([]Piece, len(dom)-1)
	if len(dom) < 2 {
		return nil, fmt.Errorf("fun: need at least 2 breakpoints, got %d", len(dom))
	}
	for i := 0; i < len(dom)-1; i++ {
		if !(dom[i] < dom[i+1]) {
			return nil, fmt.Errorf("fun: breakpoints must be strictly increasing at index %d", i+1)
		}
		pieces[i] = Piece{A: dom[i], B: dom[i+1], Coeffs: []float64{c}}
	}
	return &Fun{pieces: pieces}, nil
}
