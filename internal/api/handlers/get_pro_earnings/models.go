package get_pro_earnings

import (
	"time"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
)

// EarningItem элемент списка заработков
type EarningItem struct {
	ID        string `json:"id"`
	BookingID string `json:"bookingId"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"createdAt"`
}

// ProStatsResponse производная статистика профиля исполнителя
type ProStatsResponse struct {
	CompletedJobsCount  int  `json:"completedJobsCount"`
	IsTopPro            bool `json:"isTopPro"`
	ResponseTimeMinutes *int `json:"responseTimeMinutes"`
}

// EarningsResponse HTTP response model
type EarningsResponse struct {
	ProProfileID  string           `json:"proProfileId"`
	Earnings      []EarningItem    `json:"earnings"`
	PayableAmount int64            `json:"payableAmount"`
	Currency      string           `json:"currency"`
	Stats         ProStatsResponse `json:"stats"`
}

// ToResponse собирает HTTP response из заработков и статистики
func ToResponse(proProfileID string, earnings []*domain.Earning, total int64, stats *domain.ProStats) *EarningsResponse {
	items := make([]EarningItem, 0, len(earnings))
	for _, e := range earnings {
		items = append(items, EarningItem{
			ID:        e.ID,
			BookingID: e.BookingID,
			Amount:    e.Amount,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		})
	}

	return &EarningsResponse{
		ProProfileID:  proProfileID,
		Earnings:      items,
		PayableAmount: total,
		Currency:      domain.DefaultCurrency,
		Stats: ProStatsResponse{
			CompletedJobsCount:  stats.CompletedJobsCount,
			IsTopPro:            stats.IsTopPro,
			ResponseTimeMinutes: stats.ResponseTimeMinutes,
		},
	}
}
