package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scanner-backend/internal/domain"
)

const alertCooldown = 30 * time.Minute

// sendAlerts pushes FCM notifications for strong-buy symbols, with a
// per-symbol cooldown so a coin that stays hot does not spam devices on
// every cycle.
func (uc *ScannerUsecase) sendAlerts(ctx context.Context, snap *domain.ScanSnapshot) {
	if uc.fcmClient == nil || !uc.fcmClient.IsEnabled() || uc.tokenRepo == nil {
		return
	}

	tokens, err := uc.tokenRepo.All(ctx)
	if err != nil {
		uc.log.Warn("loading device tokens failed", "err", err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	now := uc.now()
	for _, result := range snap.Results {
		if result.Recommendation != domain.StrongBuy {
			continue
		}

		uc.notifiedMu.Lock()
		last, seen := uc.notified[result.Symbol]
		uc.notifiedMu.Unlock()
		if seen && now.Sub(last) < alertCooldown {
			continue
		}

		base := strings.TrimSuffix(result.Symbol, uc.cfg.QuoteAsset)
		title := fmt.Sprintf("%s strong buy", base)
		body := fmt.Sprintf("Score %+d | Price %.5f | %s candles", result.TotalScore, result.Price, snap.Interval)
		data := map[string]string{
			"symbol":         result.Symbol,
			"totalScore":     fmt.Sprintf("%d", result.TotalScore),
			"price":          fmt.Sprintf("%.8f", result.Price),
			"recommendation": string(result.Recommendation),
		}

		if err := uc.fcmClient.SendMulticast(ctx, tokens, title, body, data); err != nil {
			uc.log.Warn("alert send failed", "symbol", result.Symbol, "err", err)
			continue
		}

		uc.notifiedMu.Lock()
		uc.notified[result.Symbol] = now
		uc.notifiedMu.Unlock()
	}

	// Drop stale cooldown entries.
	uc.notifiedMu.Lock()
	for symbol, at := range uc.notified {
		if now.Sub(at) > 2*alertCooldown {
			delete(uc.notified, symbol)
		}
	}
	uc.notifiedMu.Unlock()
}
