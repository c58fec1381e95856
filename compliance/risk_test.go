package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeRisk(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		issues   int
		warnings int
		highMod  bool
		score    int
		level    RiskLevel
	}{
		{0, 0, false, 0, RiskLow},
		{0, 1, false, 15, RiskLow},
		{0, 1, true, 25, RiskLow},
		{0, 2, false, 30, RiskMedium},
		{1, 0, false, 35, RiskMedium},
		{1, 1, true, 60, RiskMedium},
		{1, 2, false, 65, RiskHigh},
		{2, 0, false, 70, RiskHigh},
		{2, 1, true, 95, RiskHigh},
		{3, 3, true, 100, RiskHigh},
		{10, 0, false, 100, RiskHigh},
	}

	for _, f := range fixtures {
		score, level := ComputeRisk(f.issues, f.warnings, f.highMod)
		assert.Equal(f.score, score, "issues=%d warnings=%d highMod=%v", f.issues, f.warnings, f.highMod)
		assert.Equal(f.level, level, "issues=%d warnings=%d highMod=%v", f.issues, f.warnings, f.highMod)
	}
}
