package services

import (
	"context"
	"sort"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/ports"
	"github.com/rafabene/chatconvite-backend/internal/domain/repositories"
)

// noopLogger descarta tudo; suficiente para os testes de serviço
type noopLogger struct{}

func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (l noopLogger) With(args ...any) ports.Logger {
	return l
}

// fakeUnitOfWork executa a função diretamente, simulando rollback:
// se fn falhar, as mutações feitas via rollbackFns são desfeitas
type fakeUnitOfWork struct {
	rollbackFns []func()
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (u *fakeUnitOfWork) Commit(ctx context.Context) error                   { return nil }
func (u *fakeUnitOfWork) Rollback(ctx context.Context) error                 { return nil }

func (u *fakeUnitOfWork) WithTransaction(ctx context.Context, fn func(context.Context) error) error {
	u.rollbackFns = nil
	if err := fn(ctx); err != nil {
		for i := len(u.rollbackFns) - 1; i >= 0; i-- {
			u.rollbackFns[i]()
		}
		return err
	}
	return nil
}

// fakeUserRepository guarda usuários em memória
type fakeUserRepository struct {
	users  map[uint]*entities.User
	nextID uint
	uow    *fakeUnitOfWork
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uint]*entities.User), nextID: 1}
}

func (r *fakeUserRepository) add(user *entities.User) *entities.User {
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	copied := *user
	r.users[user.ID] = &copied
	return r.users[user.ID]
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entities.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied

	if r.uow != nil {
		id := user.ID
		r.uow.rollbackFns = append(r.uow.rollbackFns, func() {
			delete(r.users, id)
		})
	}
	return nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) ListWithMessageCount(ctx context.Context) ([]*repositories.UserWithCount, error) {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	// Mais recentes primeiro (ids crescem com o tempo)
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]*repositories.UserWithCount, 0, len(ids))
	for _, id := range ids {
		out = append(out, &repositories.UserWithCount{User: *r.users[id]})
	}
	return out, nil
}

func (r *fakeUserRepository) SetBanned(ctx context.Context, id uint, banned bool) error {
	if user, ok := r.users[id]; ok {
		user.IsBanned = banned
	}
	return nil
}

func (r *fakeUserRepository) SetRole(ctx context.Context, id uint, role entities.Role) error {
	if user, ok := r.users[id]; ok {
		user.Role = role
	}
	return nil
}

func (r *fakeUserRepository) HasAdmin(ctx context.Context) (bool, error) {
	for _, user := range r.users {
		if user.IsAdmin() {
			return true, nil
		}
	}
	return false, nil
}

// fakeInviteCodeRepository guarda invite codes em memória
type fakeInviteCodeRepository struct {
	codes  map[uint]*entities.InviteCode
	nextID uint
}

func newFakeInviteCodeRepository() *fakeInviteCodeRepository {
	return &fakeInviteCodeRepository{codes: make(map[uint]*entities.InviteCode), nextID: 1}
}

func (r *fakeInviteCodeRepository) add(code *entities.InviteCode) *entities.InviteCode {
	if code.ID == 0 {
		code.ID = r.nextID
	}
	if code.ID >= r.nextID {
		r.nextID = code.ID + 1
	}
	copied := *code
	r.codes[code.ID] = &copied
	return r.codes[code.ID]
}

func (r *fakeInviteCodeRepository) Create(ctx context.Context, code *entities.InviteCode) error {
	code.ID = r.nextID
	r.nextID++
	copied := *code
	r.codes[code.ID] = &copied
	return nil
}

func (r *fakeInviteCodeRepository) FindByCode(ctx context.Context, code string) (*entities.InviteCode, error) {
	for _, invite := range r.codes {
		if invite.Code == code {
			copied := *invite
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeInviteCodeRepository) FindByID(ctx context.Context, id uint) (*entities.InviteCode, error) {
	invite, ok := r.codes[id]
	if !ok {
		return nil, nil
	}
	copied := *invite
	return &copied, nil
}

func (r *fakeInviteCodeRepository) Redeem(ctx context.Context, codeID, userID uint) (bool, error) {
	invite, ok := r.codes[codeID]
	if !ok || !invite.IsActive || invite.UsedBy != nil {
		return false, nil
	}
	invite.UsedBy = &userID
	invite.IsActive = false
	return true, nil
}

func (r *fakeInviteCodeRepository) ListWithConsumer(ctx context.Context) ([]*repositories.CodeWithConsumer, error) {
	ids := make([]uint, 0, len(r.codes))
	for id := range r.codes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	out := make([]*repositories.CodeWithConsumer, 0, len(ids))
	for _, id := range ids {
		out = append(out, &repositories.CodeWithConsumer{InviteCode: *r.codes[id]})
	}
	return out, nil
}

// fakeMessageRepository guarda mensagens em memória e resolve o autor
// contra um fakeUserRepository
type fakeMessageRepository struct {
	messages []*entities.Message
	users    *fakeUserRepository
	nextID   uint
}

func newFakeMessageRepository(users *fakeUserRepository) *fakeMessageRepository {
	return &fakeMessageRepository{users: users, nextID: 1}
}

func (r *fakeMessageRepository) Create(ctx context.Context, message *entities.Message) error {
	message.ID = r.nextID
	r.nextID++
	copied := *message
	r.messages = append(r.messages, &copied)
	return nil
}

func (r *fakeMessageRepository) ListRecentWithAuthor(ctx context.Context, limit int) ([]*repositories.MessageWithAuthor, error) {
	// Inner join: mensagens sem autor ficam de fora
	joined := make([]*repositories.MessageWithAuthor, 0, len(r.messages))
	for _, msg := range r.messages {
		author, ok := r.users.users[msg.UserID]
		if !ok {
			continue
		}
		joined = append(joined, &repositories.MessageWithAuthor{
			Message: *msg,
			Author:  author.Profile(),
		})
	}

	// As `limit` mais recentes, em ordem crescente
	if len(joined) > limit {
		joined = joined[len(joined)-limit:]
	}
	return joined, nil
}
