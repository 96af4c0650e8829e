package prior

import (
	"fmt"
	"math/big"
	"math/rand/v2"

	"github.com/AlexZinkM/prior-testnet-bot/internal/model"
)

const (
	// swap amounts are drawn in millionths of PRIOR
	minSwapMicro = 1000 // 0.001
	maxSwapMicro = 2000 // 0.002
	microToWei   = 1_000_000_000_000
)

// NewDirective draws a swap amount uniformly from [0.001, 0.002] with 6 decimals
// and one of the two swap tokens.
func NewDirective(r *rand.Rand) model.SwapDirective {
	micro := minSwapMicro + r.IntN(maxSwapMicro-minSwapMicro+1)
	return model.SwapDirective{
		Amount:    fmt.Sprintf("%d.%06d", micro/1_000_000, micro%1_000_000),
		AmountWei: new(big.Int).Mul(big.NewInt(int64(micro)), big.NewInt(microToWei)),
		Token:     model.SwapTokens[r.IntN(len(model.SwapTokens))],
	}
}
