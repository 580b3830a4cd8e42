package models

// Приоритет площадки определяет фиксированный бонус к скорингу.
type DestinationPriority string

const (
	PriorityHigh   DestinationPriority = "high"
	PriorityMedium DestinationPriority = "medium"
	PriorityLow    DestinationPriority = "low"
)

// Категория площадки: conversion — сообщества, где уместно продвижение,
// relationship — сообщества для выстраивания репутации.
const (
	CategoryConversion   = "conversion"
	CategoryRelationship = "relationship"
)

// Destination описывает отслеживаемое сообщество (канал с обсуждениями).
// Конфигурация статическая и не меняется во время работы, кроме флага
// активности и дневного лимита, которые можно переопределить через БД.
type Destination struct {
	ID          string              `json:"id"` // username канала, например "videomakers_hub"
	Title       string              `json:"title"`
	MemberCount int                 `json:"member_count"`
	IsActive    bool                `json:"is_active"`
	Priority    DestinationPriority `json:"priority"`
	DailyCap    int                 `json:"daily_cap"`
	Keywords    []string            `json:"keywords"`
	Category    string              `json:"category"`
	PromoRatio  float64             `json:"promo_ratio"` // вероятность промо-ответа, остальное — экспертный совет

	// FallbackComments используются, когда генерация текста недоступна.
	// Список не должен быть пустым у активных площадок.
	FallbackComments []string `json:"fallback_comments"`

	// SamplePrompts — заготовки для bridge-ответа, когда за прогон
	// не нашлось ни одной возможности выше порога.
	SamplePrompts []string `json:"sample_prompts"`
}
