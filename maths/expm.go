package maths

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Expm 计算方阵的矩阵指数 exp(A)
// 委托 gonum 的缩放-平方实现（不假设对称性，可处理非正规矩阵），
// 在其外补上有限性检查：gonum 对畸形输入直接panic，而数值失败
// 在这里是可报告的错误而非程序缺陷
func Expm(a *mat.Dense) (*mat.Dense, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("expm: input must be square, got %dx%d", r, c)
	}
	if r == 0 {
		return nil, errors.New("expm: empty matrix")
	}
	if !IsFiniteMat(a) {
		return nil, errors.New("expm: input contains NaN or Inf")
	}
	x := mat.NewDense(r, r, nil)
	x.Exp(a)
	if !IsFiniteMat(x) {
		return nil, errors.New("expm: result contains NaN or Inf")
	}
	return x, nil
}
