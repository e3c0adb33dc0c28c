// Package templates holds the fixed per-print-type step tables used to
// materialize an order's steps at creation time. The tables are static
// configuration carried in code; there is no template administration.
package templates

import (
	"printflow/internal/core/domain/model/order"
	"printflow/internal/core/ports"
	"printflow/internal/pkg/errs"
)

// StaticProvider implements ports.StepTemplateProvider from the fixed
// tables below.
type StaticProvider struct{}

// NewStaticProvider creates the fixed step template provider.
func NewStaticProvider() StaticProvider {
	return StaticProvider{}
}

// TemplateFor returns the ordered step list for a print type. The
// returned slice is a copy; callers may not mutate the tables.
func (StaticProvider) TemplateFor(printType order.PrintType) ([]ports.StepTemplate, error) {
	var table []ports.StepTemplate
	switch printType {
	case order.PrintTypeCover:
		table = coverSteps
	case order.PrintTypeContent:
		table = contentSteps
	case order.PrintTypeCoverContent:
		table = coverContentSteps
	default:
		return nil, errs.NewValueIsInvalidError("printType")
	}

	out := make([]ports.StepTemplate, len(table))
	copy(out, table)
	return out, nil
}

var coverSteps = []ports.StepTemplate{
	{Name: "印刷", Description: "封面印刷", Category: order.CategoryCover, StepOrder: 1, Required: true},
	{Name: "覆膜", Description: "覆膜工艺", Category: order.CategoryCover, StepOrder: 2},
	{Name: "烫金", Description: "烫金工艺", Category: order.CategoryCover, StepOrder: 3},
	{Name: "压痕", Description: "压痕工艺", Category: order.CategoryCover, StepOrder: 4},
	{Name: "压纹", Description: "压纹工艺", Category: order.CategoryCover, StepOrder: 5},
	{Name: "模切", Description: "模切工艺", Category: order.CategoryCover, StepOrder: 6},
	{Name: "击凸", Description: "击凸工艺", Category: order.CategoryCover, StepOrder: 7},
	{Name: "过油", Description: "过油工艺", Category: order.CategoryCover, StepOrder: 8},
	{Name: "外调", Description: "外调加工", Category: order.CategoryCover, StepOrder: 9},
}

var contentSteps = []ports.StepTemplate{
	{Name: "调图", Description: "图像调整", Category: order.CategoryContent, StepOrder: 1, Required: true},
	{Name: "CTP", Description: "CTP制版", Category: order.CategoryContent, StepOrder: 2, Required: true},
	{Name: "切纸", Description: "切纸准备", Category: order.CategoryContent, StepOrder: 3, Required: true},
	{Name: "印刷", Description: "内文印刷", Category: order.CategoryContent, StepOrder: 4, Required: true},
	{Name: "折页", Description: "折页工序", Category: order.CategoryContent, StepOrder: 5},
	{Name: "锁线", Description: "锁线装订", Category: order.CategoryContent, StepOrder: 6},
	{Name: "胶包", Description: "胶装包书", Category: order.CategoryContent, StepOrder: 7},
	{Name: "马订", Description: "马订装订", Category: order.CategoryContent, StepOrder: 8},
	{Name: "勒口", Description: "勒口工艺", Category: order.CategoryContent, StepOrder: 9},
	{Name: "夹卡片", Description: "夹卡片", Category: order.CategoryContent, StepOrder: 10},
	{Name: "配本(塑封)", Description: "配本塑封", Category: order.CategoryContent, StepOrder: 11},
	{Name: "打包", Description: "打包工序", Category: order.CategoryContent, StepOrder: 12, Required: true},
	{Name: "送货", Description: "送货配送", Category: order.CategoryContent, StepOrder: 13, Required: true},
}

// coverContentSteps merges both pipelines with one continuous order
// sequence, so cross-pipeline precedence notes read in production order.
// The press steps are renamed 封面印刷/内文印刷 to stay unambiguous, and
// the cover chain drops 外调.
var coverContentSteps = []ports.StepTemplate{
	{Name: "封面印刷", Description: "封面印刷", Category: order.CategoryCover, StepOrder: 1, Required: true},
	{Name: "覆膜", Description: "封面覆膜工艺", Category: order.CategoryCover, StepOrder: 2},
	{Name: "烫金", Description: "封面烫金工艺", Category: order.CategoryCover, StepOrder: 3},
	{Name: "压痕", Description: "封面压痕工艺", Category: order.CategoryCover, StepOrder: 4},
	{Name: "压纹", Description: "封面压纹工艺", Category: order.CategoryCover, StepOrder: 5},
	{Name: "模切", Description: "封面模切工艺", Category: order.CategoryCover, StepOrder: 6},
	{Name: "击凸", Description: "封面击凸工艺", Category: order.CategoryCover, StepOrder: 7},
	{Name: "过油", Description: "封面过油工艺", Category: order.CategoryCover, StepOrder: 8},
	{Name: "调图", Description: "内文图像调整", Category: order.CategoryContent, StepOrder: 9, Required: true},
	{Name: "CTP", Description: "内文CTP制版", Category: order.CategoryContent, StepOrder: 10, Required: true},
	{Name: "切纸", Description: "内文切纸准备", Category: order.CategoryContent, StepOrder: 11, Required: true},
	{Name: "内文印刷", Description: "内文印刷", Category: order.CategoryContent, StepOrder: 12, Required: true},
	{Name: "折页", Description: "内文折页工序", Category: order.CategoryContent, StepOrder: 13},
	{Name: "锁线", Description: "锁线装订", Category: order.CategoryContent, StepOrder: 14},
	{Name: "胶包", Description: "胶装包书", Category: order.CategoryContent, StepOrder: 15},
	{Name: "马订", Description: "马订装订", Category: order.CategoryContent, StepOrder: 16},
	{Name: "勒口", Description: "勒口工艺", Category: order.CategoryContent, StepOrder: 17},
	{Name: "夹卡片", Description: "夹卡片", Category: order.CategoryContent, StepOrder: 18},
	{Name: "配本(塑封)", Description: "配本塑封", Category: order.CategoryContent, StepOrder: 19},
	{Name: "打包", Description: "打包工序", Category: order.CategoryContent, StepOrder: 20, Required: true},
	{Name: "送货", Description: "送货配送", Category: order.CategoryContent, StepOrder: 21, Required: true},
}
