package progression

import "math"

// StreakBonusRate is the multiplier growth per consecutive completion
// (10% per streak step, uncapped).
const StreakBonusRate = 0.1

// ComputeReward returns floor(base * (1 + 0.1*streak)). Pure: no side
// effects, stable for all non-negative inputs.
func ComputeReward(baseReward int64, consecutiveCompletions int) int64 {
	multiplier := 1 + StreakBonusRate*float64(consecutiveCompletions)
	return int64(math.Floor(float64(baseReward) * multiplier))
}

// WalletShare is the portion of a computed reward actually credited to the
// wallet. Only half is paid out; the other half is withheld. The asymmetry
// is kept as-is from the original behavior and must not be silently
// "fixed" to a full payout.
func WalletShare(reward int64) int64 {
	return reward / 2
}
