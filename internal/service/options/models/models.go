package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/wellmio-booking/internal/domain"
)

// UpsertRequest запрос на создание или обновление настройки
type UpsertRequest struct {
	ID    string
	Name  string
	Value string
}

// Option настройка бронирования
type Option struct {
	ID        string
	Name      string
	Value     string
	CreatedAt time.Time
}

// Pricing цена одного сеанса
type Pricing struct {
	Amount   decimal.Decimal
	Currency string
}

// AmountMinor сумма в минимальных единицах валюты
func (p *Pricing) AmountMinor() int64 {
	return p.Amount.Shift(2).Round(0).IntPart()
}

// FromDomainOption конвертирует доменную модель в модель сервиса
func FromDomainOption(opt *domain.BookingOption) *Option {
	return &Option{
		ID:        opt.ID.String(),
		Name:      string(opt.Name),
		Value:     opt.Value,
		CreatedAt: opt.CreatedAt,
	}
}

// FromDomainOptionList конвертирует список настроек
func FromDomainOptionList(opts []*domain.BookingOption) []*Option {
	result := make([]*Option, 0, len(opts))
	for _, opt := range opts {
		result = append(result, FromDomainOption(opt))
	}
	return result
}
