package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/arvorebank/overdraft/internal/overdraft/domain"
	"github.com/arvorebank/overdraft/internal/overdraft/store"
	"github.com/arvorebank/overdraft/pkg/cryptox"
	"github.com/arvorebank/overdraft/pkg/idx"
	"github.com/arvorebank/overdraft/pkg/slogx"
)

// SeedOperator is the initial back-office user created on an empty database.
type SeedOperator struct {
	Username          string
	Password          string
	OperationPassword string
}

// SeedApplication is an initial partner application created on an empty
// database.
type SeedApplication struct {
	ClientID string
	Secret   string
	Name     string
}

// BootstrapService seeds the database with the configured operator and
// partner applications so a fresh deployment is usable immediately. It is
// idempotent: each table is only seeded while it is empty.
type BootstrapService struct {
	Store        store.Store
	Operator     SeedOperator
	Applications []SeedApplication
}

func (s *BootstrapService) Run(ctx context.Context) error {
	if err := s.seedOperator(ctx); err != nil {
		return err
	}
	return s.seedApplications(ctx)
}

func (s *BootstrapService) seedOperator(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	empty, err := s.Store.Operators().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty || s.Operator.Username == "" {
		return nil
	}

	passHash, err := cryptox.HashPassword(s.Operator.Password)
	if err != nil {
		return err
	}
	opHash, err := cryptox.HashPassword(s.Operator.OperationPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = s.Store.Operators().CreateOperator(ctx, domain.Operator{
		ID:                    idx.New().String(),
		Username:              s.Operator.Username,
		PasswordHash:          passHash,
		OperationPasswordHash: opHash,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		return err
	}

	l.Info("seeded initial operator", slog.String("username", s.Operator.Username))
	return nil
}

func (s *BootstrapService) seedApplications(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	empty, err := s.Store.Applications().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty || len(s.Applications) == 0 {
		return nil
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := time.Now().UTC()
		for _, seed := range s.Applications {
			secretHash, err := cryptox.HashPassword(seed.Secret)
			if err != nil {
				return err
			}
			err = tx.Applications().CreateApplication(ctx, domain.Application{
				ID:         idx.New().String(),
				ClientID:   seed.ClientID,
				SecretHash: secretHash,
				Name:       seed.Name,
				Active:     true,
				CreatedAt:  now,
				UpdatedAt:  now,
			})
			if err != nil {
				return err
			}
			l.Info("seeded partner application", slog.String("client_id", seed.ClientID))
		}
		return nil
	})
}
