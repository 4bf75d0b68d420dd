package semigroup

import (
	"github.com/gokulhari/chebfun/fun"
	"github.com/gokulhari/chebfun/linop"
	"gonum.org/v1/gonum/mat"
)

// Discretization 接口定义了算子在给定维度下的有限维矩阵模型
// 维度向量在细化循环中由驱动层原地推进，昂贵的矩阵装配推迟到 Matrix 调用时
type Discretization interface {
	// Dims 返回各子区间当前维度的副本
	Dims() []int
	// Matrix 装配矩阵模型：算子配置矩阵A、约束行B、降采样行P
	// 无约束时B为nil；约束数量与降采样行数不平衡（方程不适定）时返回错误
	Matrix() (a, b, p *mat.Dense, err error)
	// ToValues 前向映射：各分量函数 → 当前分辨率下的离散值向量
	ToValues(funs []*fun.Fun) *mat.VecDense
	// FromValues 反向映射：离散值向量 → 按[分量][子区间]切分的原始数值片段
	FromValues(v *mat.VecDense) [][][]float64
	// Scale 计算收敛判定用的各分量归一化常数（幅值，零时回退为1）
	Scale(pieces [][][]float64) []float64
}

// Factory 离散化器工厂：给定算子和各子区间维度生成矩阵模型
type Factory func(op *linop.Operator, dims []int) (Discretization, error)
