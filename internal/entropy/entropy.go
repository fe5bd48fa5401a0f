// Package entropy implements statistical quality tests for random byte
// streams: a monobit frequency test ("balanced"), a chi-square byte
// distribution test ("uniform"), and a runs test ("scattered"). Scores are
// p-value-like values in [0, 1]; higher means better randomness.
package entropy

import (
	"math"
	"math/bits"
)

// PassThreshold is the minimum score for a test to count as passed
const PassThreshold = 0.01

// TestResults holds the scores of all quality tests over one byte sample
type TestResults struct {
	// Balanced is the monobit test score: balance between 0 and 1 bits
	Balanced float64 `json:"balanced"`

	// Uniform is the chi-square test score: uniformity of byte values
	Uniform float64 `json:"uniform"`

	// Scattered is the runs test score: randomness of bit transitions
	Scattered float64 `json:"scattered"`

	// Overall is the mean of the three scores
	Overall float64 `json:"overall"`

	// BytesAnalyzed is the sample size
	BytesAnalyzed int `json:"bytes_analyzed"`
}

// AllPassed reports whether every test met the pass threshold
func (r TestResults) AllPassed() bool {
	return r.Balanced >= PassThreshold && r.Uniform >= PassThreshold && r.Scattered >= PassThreshold
}

// RunAllTests runs every quality test on the sample
func RunAllTests(data []byte) TestResults {
	balanced := MonobitTest(data)
	uniform := ChiSquareTest(data)
	scattered := RunsTest(data)

	return TestResults{
		Balanced:      balanced,
		Uniform:       uniform,
		Scattered:     scattered,
		Overall:       (balanced + uniform + scattered) / 3,
		BytesAnalyzed: len(data),
	}
}

// MonobitTest checks whether the proportion of 0 and 1 bits is close to
// 50/50
func MonobitTest(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	totalBits := len(data) * 8
	ones := 0
	for _, b := range data {
		ones += bits.OnesCount8(b)
	}

	expected := float64(totalBits) / 2
	diff := math.Abs(float64(ones) - expected)

	// Binomial std dev with p = 0.5
	stdDev := math.Sqrt(float64(totalBits) / 4)
	z := diff / stdDev

	p := 1 - erf(z/math.Sqrt2)
	return clamp01(p)
}

// ChiSquareTest checks whether byte values 0-255 occur with uniform
// frequency. Samples under 256 bytes score zero; the test is meaningless
// below one expected occurrence per value.
func ChiSquareTest(data []byte) float64 {
	if len(data) < 256 {
		return 0
	}

	var counts [256]int
	for _, b := range data {
		counts[b]++
	}

	expected := float64(len(data)) / 256
	chiSq := 0.0
	for _, count := range counts {
		diff := float64(count) - expected
		chiSq += diff * diff / expected
	}

	// Normal approximation for 255 degrees of freedom
	z := (chiSq - 255) / math.Sqrt(2*255)

	p := 1 - erf(math.Abs(z)/math.Sqrt2)
	return clamp01(p)
}

// RunsTest counts runs of consecutive identical bits and compares to the
// expectation for independent bits, detecting clustering or alternation
func RunsTest(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	totalBits := len(data) * 8
	ones := 0
	runs := 1
	prevBit := (data[0] >> 7) & 1
	ones += int(prevBit)

	for i, b := range data {
		start := 6
		if i > 0 {
			start = 7
		}
		for j := start; j >= 0; j-- {
			bit := (b >> uint(j)) & 1
			ones += int(bit)
			if bit != prevBit {
				runs++
				prevBit = bit
			}
		}
	}

	n := float64(totalBits)
	zeros := n - float64(ones)
	pi := float64(ones) / n

	// Degenerate proportions make the runs statistic unusable
	if pi < 0.01 || pi > 0.99 {
		return 0
	}

	expectedRuns := 2*float64(ones)*zeros/n + 1
	variance := 2 * float64(ones) * zeros * (2*float64(ones)*zeros - n) / (n * n * (n - 1))
	stdRuns := math.Sqrt(variance)
	if stdRuns == 0 || math.IsNaN(stdRuns) {
		return 0
	}

	z := (float64(runs) - expectedRuns) / stdRuns

	p := 1 - erf(math.Abs(z)/math.Sqrt2)
	return clamp01(p)
}

// erf is the Abramowitz and Stegun approximation of the error function
func erf(x float64) float64 {
	const (
		a1 = 0.254829592
		a2 = -0.284496736
		a3 = 1.421413741
		a4 = -1.453152027
		a5 = 1.061405429
		p  = 0.3275911
	)

	sign := 1.0
	if x < 0 {
		sign = -1
		x = -x
	}

	t := 1 / (1 + p*x)
	y := 1 - (((((a5*t+a4)*t)+a3)*t+a2)*t+a1)*t*math.Exp(-x*x)

	return sign * y
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
