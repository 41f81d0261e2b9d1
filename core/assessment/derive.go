package assessment

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultTeachingFactor = 0.2 // M.F. for teaching no. of subject

	lectureCreditBase = 20
	factorCreditBase  = 10

	ProjectCreditMax  = 2 // per project
	ProjectCreditCap  = 6 // all projects
	InnovationCredits = 4
)

var hundred = decimal.NewFromInt(100)

// factor buckets, evaluated top-down; lower bounds are inclusive
var factorBuckets = []struct {
	min    decimal.Decimal
	factor float64
	rating string
}{
	{min: decimal.NewFromInt(81), factor: 1.0, rating: "Excellent"},
	{min: decimal.NewFromInt(61), factor: 0.7, rating: "Good"},
	{min: decimal.NewFromInt(41), factor: 0.5, rating: "Average"},
}

var poorFactor = struct {
	factor float64
	rating string
}{factor: 0.2, rating: "Poor"}

func toDecimal(v Value) decimal.Decimal {
	return decimal.NewFromFloat(v.Num())
}

func round2(d decimal.Decimal) Value {
	f, _ := d.Round(2).Float64()
	return Number(f)
}

// PercentAchieved is periodEngaged / periodAllotted * 100.
// It is unset unless both inputs are non-zero numbers.
func PercentAchieved(periodEngaged, periodAllotted Value) Value {
	if !periodEngaged.IsNumber() || !periodAllotted.IsNumber() || !periodEngaged.Truthy() || !periodAllotted.Truthy() {
		return Empty()
	}
	return round2(toDecimal(periodEngaged).Div(toDecimal(periodAllotted)).Mul(hundred))
}

// LectureCredits is 20 * percentAchieved/100 * weightingFactor.
func LectureCredits(percentAchieved, weightingFactor Value) Value {
	if !percentAchieved.IsNumber() || !weightingFactor.IsNumber() {
		return Empty()
	}
	return round2(decimal.NewFromInt(lectureCreditBase).
		Mul(toDecimal(percentAchieved).Div(hundred)).
		Mul(toDecimal(weightingFactor)))
}

// PerformanceFactor buckets an average: >=81 → 1.0, >=61 → 0.7, >=41 → 0.5, else 0.2.
// Non-numbers stay unset instead of falling into the lowest bucket.
func PerformanceFactor(average Value) Value {
	if !average.IsNumber() {
		return Empty()
	}
	avg := toDecimal(average)
	for _, b := range factorBuckets {
		if avg.GreaterThanOrEqual(b.min) {
			return Number(b.factor)
		}
	}
	return Number(poorFactor.factor)
}

// FactorCredits is 10 * factor.
func FactorCredits(factor Value) Value {
	if !factor.IsNumber() {
		return Empty()
	}
	return round2(decimal.NewFromInt(factorCreditBase).Mul(toDecimal(factor)))
}

// Rating names the bucket of a performance factor.
func Rating(factor Value) string {
	f, ok := factor.Float()
	if !ok {
		return ""
	}
	for _, b := range factorBuckets {
		if b.factor == f {
			return b.rating
		}
	}
	if f == poorFactor.factor {
		return poorFactor.rating
	}
	return ""
}

// AverageAttendance is studentPresent * 100 / (lectureEngaged * studentRoll).
// ok is false when any input is zero or missing; callers then keep their previous values.
func AverageAttendance(studentPresent, lectureEngaged, studentRoll Value) (avg Value, ok bool) {
	for _, v := range []Value{studentPresent, lectureEngaged, studentRoll} {
		if !v.IsNumber() || !v.Truthy() {
			return Empty(), false
		}
	}
	denom := toDecimal(lectureEngaged).Mul(toDecimal(studentRoll))
	return round2(toDecimal(studentPresent).Mul(hundred).Div(denom)), true
}

// ColumnAverage is the arithmetic mean of values, where unset values count as 0.
func ColumnAverage(values []Value) Value {
	if len(values) == 0 {
		return Empty()
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(toDecimal(v))
	}
	return round2(sum.Div(decimal.NewFromInt(int64(len(values)))))
}

// TotalProjectCredits is min(sum of credits, 6) plus 4 when the innovation narrative is filled.
func TotalProjectCredits(credits []Value, innovation string) Value {
	sum := decimal.Zero
	for _, c := range credits {
		sum = sum.Add(toDecimal(c))
	}
	total := decimal.Min(sum, decimal.NewFromInt(ProjectCreditCap))
	if strings.TrimSpace(innovation) != "" {
		total = total.Add(decimal.NewFromInt(InnovationCredits))
	}
	f, _ := total.Float64()
	return Number(f)
}

// Fixed2 formats numbers with two decimals, the way derived fields are displayed.
func Fixed2(v Value) string {
	if !v.IsNumber() {
		return v.String()
	}
	return toDecimal(v).StringFixed(2)
}
