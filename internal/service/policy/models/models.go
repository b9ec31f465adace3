package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Уровень, с которого взята политика
const (
	LevelSpace   = "space"
	LevelHost    = "host"
	LevelDefault = "default"
)

// Request модели

// UpsertPolicyRequest запрос на создание или замену политики отмены
type UpsertPolicyRequest struct {
	UserID                     string  `json:"-"`
	HostID                     string  `json:"-"`
	SpaceID                    *string `json:"spaceId,omitempty"` // NULL = для всех мест хоста
	FreeCancellationHours      int     `json:"freeCancellationHours"`
	LateCancellationFeePercent int     `json:"lateCancellationFeePercent"`
}

// DeletePolicyRequest запрос на удаление политики
type DeletePolicyRequest struct {
	UserID  string
	HostID  string
	SpaceID *string
}

// Response модели

// PolicyResponse ответ с данными политики отмены
type PolicyResponse struct {
	ID                         int64      `json:"id,omitempty"`
	HostID                     string     `json:"hostId"`
	SpaceID                    *string    `json:"spaceId,omitempty"`
	Level                      string     `json:"level"`
	FreeCancellationHours      int        `json:"freeCancellationHours"`
	LateCancellationFeePercent int        `json:"lateCancellationFeePercent"`
	CreatedAt                  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt                  *time.Time `json:"updatedAt,omitempty"`
}

// PolicyListResponse ответ со списком политик
type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

// Методы конвертации

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.CancellationPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		ID:                         p.ID,
		HostID:                     p.HostID,
		SpaceID:                    p.SpaceID,
		FreeCancellationHours:      p.FreeCancellationHours,
		LateCancellationFeePercent: p.LateCancellationFeePercent,
	}

	switch {
	case p.IsDefault():
		resp.Level = LevelDefault
	case p.IsHostWide():
		resp.Level = LevelHost
	default:
		resp.Level = LevelSpace
	}

	if !p.IsDefault() {
		createdAt, updatedAt := p.CreatedAt, p.UpdatedAt
		resp.CreatedAt = &createdAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

// FromDomainPolicyList конвертирует список domain моделей в DTO
func FromDomainPolicyList(policies []*domain.CancellationPolicy) *PolicyListResponse {
	resp := &PolicyListResponse{
		Policies: make([]PolicyResponse, 0, len(policies)),
	}

	for _, p := range policies {
		if policyResp := FromDomainPolicy(p); policyResp != nil {
			resp.Policies = append(resp.Policies, *policyResp)
		}
	}

	return resp
}

// ToDomainPolicy конвертирует запрос в domain модель
func (r *UpsertPolicyRequest) ToDomainPolicy() *domain.CancellationPolicy {
	return &domain.CancellationPolicy{
		HostID:                     r.HostID,
		SpaceID:                    r.SpaceID,
		FreeCancellationHours:      r.FreeCancellationHours,
		LateCancellationFeePercent: r.LateCancellationFeePercent,
	}
}
