package earnings

import "github.com/m04kA/SMC-MarketplaceService/internal/domain"

// PercentFeeCalculator комиссия платформы в базисных пунктах от суммы.
// Целочисленная арифметика в минорных единицах, без плавающей точки.
type PercentFeeCalculator struct {
	defaultBps  int64
	categoryBps map[domain.ServiceCategory]int64
}

// NewPercentFeeCalculator создает калькулятор комиссии.
// defaultBps применяется к категориям без индивидуальной ставки.
func NewPercentFeeCalculator(defaultBps int64, categoryBps map[domain.ServiceCategory]int64) *PercentFeeCalculator {
	return &PercentFeeCalculator{
		defaultBps:  defaultBps,
		categoryBps: categoryBps,
	}
}

// Fee возвращает комиссию платформы в минорных единицах
func (c *PercentFeeCalculator) Fee(amount int64, category domain.ServiceCategory) int64 {
	bps := c.defaultBps
	if categoryRate, ok := c.categoryBps[category]; ok {
		bps = categoryRate
	}
	return amount * bps / 10000
}
