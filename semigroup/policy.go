package semigroup

// candidates 生成候选分辨率序列（分辨率策略）
// 从配置阶梯中剔除低于minDim的候选：初值数据已需要的分辨率是下界，
// 绝不尝试比输入数据更粗的离散化；全部被剔除时回退为{minDim}
func candidates(p *Prefs, minDim int) []int {
	out := make([]int, 0, len(p.DimensionValues))
	for _, d := range p.DimensionValues {
		if d >= minDim {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = append(out, minDim)
	}
	return out
}

// nextDim 返回阶梯中大于cur的下一个候选维度，耗尽时ok为false
func nextDim(ladder []int, cur int) (next int, ok bool) {
	for _, d := range ladder {
		if d > cur {
			return d, true
		}
	}
	return 0, false
}
