package service

import (
	"context"

	"go-inventory-ledger/internal/ledger"
	"go-inventory-ledger/internal/model"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type UserService interface {
	RegisterUser(ctx context.Context, req *RegisterUserRequest) (*model.User, error)
	GetAllUsers(ctx context.Context) []model.UserResponse
	// Registered reports whether anyone has signed up yet. The app gates its
	// inventory screens on it.
	Registered(ctx context.Context) bool
}

type RegisterUserRequest struct {
	Email    string `json:"email" validate:"max=254"`
	FullName string `json:"full_name" validate:"max=255"`
}

type userService struct {
	ledger *ledger.Ledger
	log    *zap.Logger
	tracer trace.Tracer
}

func NewUserService(l *ledger.Ledger, log *zap.Logger, tracer trace.Tracer) UserService {
	return &userService{
		ledger: l,
		log:    log,
		tracer: tracer,
	}
}

func (s *userService) RegisterUser(ctx context.Context, req *RegisterUserRequest) (user *model.User, err error) {
	_, span := s.tracer.Start(ctx, "users.register")
	defer func() { endSpan(span, err) }()

	if err := validate(req); err != nil {
		return nil, err
	}

	u, err := s.ledger.RegisterUser(req.Email, req.FullName)
	if err != nil {
		s.log.Info("user registration rejected", zap.Error(err))
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", u.ID))
	return &u, nil
}

func (s *userService) GetAllUsers(ctx context.Context) []model.UserResponse {
	users := s.ledger.ListUsers()
	resp := make([]model.UserResponse, len(users))
	for i := range users {
		resp[i] = users[i].ToResponse()
	}
	return resp
}

func (s *userService) Registered(ctx context.Context) bool {
	return s.ledger.Stats().Users > 0
}
