package usecase

import (
	"context"
	"errors"

	"leads-relay-bot/internal/domain"
	"leads-relay-bot/internal/domain/model"
	"leads-relay-bot/internal/domain/ports/adapter"
	"leads-relay-bot/internal/infra/logging"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes the read-only user operations behind the bot commands.
// Errors are domain.ErrNotFound or domain.ErrUnavailable; callers turn both
// into a "please register" reply.
type UserUseCase interface {
	Register(ctx context.Context, tgID int64, username, fullName string) (*model.User, error)
	Balance(ctx context.Context, tgID int64) (float64, error)
	Stats(ctx context.Context, tgID int64) (*model.Stats, error)
}

type userUC struct {
	backend adapter.BackendAPI
	log     *zerolog.Logger
}

func NewUserUseCase(backend adapter.BackendAPI, logger *zerolog.Logger) *userUC {
	return &userUC{backend: backend, log: logger}
}

// Register resolves the user with a single lookup. The backend creates unknown
// users on GET /user/get, so a miss here means the record is being created.
func (u *userUC) Register(ctx context.Context, tgID int64, username, fullName string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Register")()
	log := logging.With(ctx, u.log)

	user, err := u.backend.GetUser(ctx, tgID, username, fullName)
	switch {
	case err == nil:
		log.Info().Int64("tg_id", tgID).Str("user_id", user.ID).Msg("user registered")
		return user, nil
	case errors.Is(err, domain.ErrNotFound):
		log.Info().Int64("tg_id", tgID).Msg("user absent, assuming backend is creating it")
	default:
		log.Warn().Err(err).Int64("tg_id", tgID).Msg("could not register user, continuing")
	}
	return nil, err
}

func (u *userUC) Balance(ctx context.Context, tgID int64) (float64, error) {
	defer logging.TraceDuration(u.log, "UserUC.Balance")()

	user, err := u.backend.GetUser(ctx, tgID, "", "")
	if err != nil {
		logging.With(ctx, u.log).Warn().Err(err).Int64("tg_id", tgID).Msg("balance unavailable")
		return 0, err
	}
	return user.Balance, nil
}

func (u *userUC) Stats(ctx context.Context, tgID int64) (*model.Stats, error) {
	defer logging.TraceDuration(u.log, "UserUC.Stats")()

	st, err := u.backend.GetDashboard(ctx, tgID)
	if err != nil {
		logging.With(ctx, u.log).Warn().Err(err).Int64("tg_id", tgID).Msg("stats unavailable")
		return nil, err
	}
	return st, nil
}
