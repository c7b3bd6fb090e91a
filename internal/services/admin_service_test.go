package services

import (
	"context"
	errs "errors"
	"strings"
	"testing"

	"github.com/rafabene/chatconvite-backend/internal/domain/entities"
	"github.com/rafabene/chatconvite-backend/internal/domain/errors"
)

func newAdminFixture() (*AdminService, *fakeUserRepository, *fakeInviteCodeRepository) {
	users := newFakeUserRepository()
	codes := newFakeInviteCodeRepository()
	userService := NewUserService(users, noopLogger{})
	service := NewAdminService(users, codes, userService, noopLogger{})
	return service, users, codes
}

func TestGenerateCode(t *testing.T) {
	ctx := context.Background()

	t.Run("admin gera código com prefixo fixo", func(t *testing.T) {
		service, users, codes := newAdminFixture()
		admin := users.add(&entities.User{Nickname: "root", Role: entities.RoleAdmin})

		code, err := service.GenerateCode(ctx, admin.ID)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}

		if !strings.HasPrefix(code, "INV-") {
			t.Errorf("esperava prefixo 'INV-', obteve '%s'", code)
		}
		if len(code) != len("INV-")+8 {
			t.Errorf("esperava sufixo de 8 caracteres, obteve '%s'", code)
		}

		stored, err := codes.FindByCode(ctx, code)
		if err != nil || stored == nil {
			t.Fatal("esperava código persistido")
		}
		if !stored.IsRedeemable() {
			t.Error("esperava código recém-gerado resgatável")
		}
		if stored.CreatedBy == nil || *stored.CreatedBy != admin.ID {
			t.Error("esperava código atribuído ao admin atuante")
		}
	})

	t.Run("códigos gerados são distintos", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		admin := users.add(&entities.User{Nickname: "root", Role: entities.RoleAdmin})

		seen := make(map[string]bool)
		for i := 0; i < 10; i++ {
			code, err := service.GenerateCode(ctx, admin.ID)
			if err != nil {
				t.Fatalf("esperava sucesso, obteve erro: %v", err)
			}
			if seen[code] {
				t.Fatalf("código repetido: %s", code)
			}
			seen[code] = true
		}
	})

	t.Run("usuário comum é rejeitado", func(t *testing.T) {
		service, users, codes := newAdminFixture()
		common := users.add(&entities.User{Nickname: "comum", Role: entities.RoleUser})

		_, err := service.GenerateCode(ctx, common.ID)
		if !errs.Is(err, errors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
		if len(codes.codes) != 0 {
			t.Errorf("esperava 0 códigos criados, obteve %d", len(codes.codes))
		}
	})

	t.Run("identidade inexistente é rejeitada", func(t *testing.T) {
		service, _, _ := newAdminFixture()

		_, err := service.GenerateCode(ctx, 999)
		if !errs.Is(err, errors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})
}

func TestListCodes(t *testing.T) {
	ctx := context.Background()

	t.Run("admin lista códigos", func(t *testing.T) {
		service, users, codes := newAdminFixture()
		admin := users.add(&entities.User{Nickname: "root", Role: entities.RoleAdmin})
		codes.add(&entities.InviteCode{Code: "INV-AAAA1111", IsActive: true})
		codes.add(&entities.InviteCode{Code: "INV-BBBB2222", IsActive: true})

		listed, err := service.ListCodes(ctx, admin.ID)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if len(listed) != 2 {
			t.Errorf("esperava 2 códigos, obteve %d", len(listed))
		}
	})

	t.Run("usuário comum é rejeitado", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		common := users.add(&entities.User{Nickname: "comum", Role: entities.RoleUser})

		_, err := service.ListCodes(ctx, common.ID)
		if !errs.Is(err, errors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("admin lista usuários", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		admin := users.add(&entities.User{Nickname: "root", Role: entities.RoleAdmin})
		users.add(&entities.User{Nickname: "maria", Role: entities.RoleUser})

		listed, err := service.ListUsers(ctx, admin.ID)
		if err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if len(listed) != 2 {
			t.Errorf("esperava 2 usuários, obteve %d", len(listed))
		}
	})

	t.Run("usuário comum é rejeitado", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		common := users.add(&entities.User{Nickname: "comum", Role: entities.RoleUser})

		_, err := service.ListUsers(ctx, common.ID)
		if !errs.Is(err, errors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
	})
}

func TestSetUserStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("ban marca o alvo como banido", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		admin := users.add(&entities.User{Nickname: "root", Role: entities.RoleAdmin})
		target := users.add(&entities.User{Nickname: "alvo", Role: entities.RoleUser})

		if err := service.SetUserStatus(ctx, admin.ID, target.ID, ActionBan); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if !users.users[target.ID].IsBanned {
			t.Error("esperava alvo banido")
		}
	})

	t.Run("unban desfaz o ban", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		admin := users.add(&entities.User{Nickname: "root", Role: entities.RoleAdmin})
		target := users.add(&entities.User{Nickname: "alvo", Role: entities.RoleUser, IsBanned: true})

		if err := service.SetUserStatus(ctx, admin.ID, target.ID, ActionUnban); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if users.users[target.ID].IsBanned {
			t.Error("esperava alvo desbanido")
		}
	})

	t.Run("promote concede papel admin", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		admin := users.add(&entities.User{Nickname: "root", Role: entities.RoleAdmin})
		target := users.add(&entities.User{Nickname: "alvo", Role: entities.RoleUser})

		if err := service.SetUserStatus(ctx, admin.ID, target.ID, ActionPromote); err != nil {
			t.Fatalf("esperava sucesso, obteve erro: %v", err)
		}
		if users.users[target.ID].Role != entities.RoleAdmin {
			t.Errorf("esperava papel 'admin', obteve '%s'", users.users[target.ID].Role)
		}
	})

	t.Run("ação desconhecida é rejeitada sem mutação", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		admin := users.add(&entities.User{Nickname: "root", Role: entities.RoleAdmin})
		target := users.add(&entities.User{Nickname: "alvo", Role: entities.RoleUser})

		err := service.SetUserStatus(ctx, admin.ID, target.ID, "demote")
		if !errs.Is(err, errors.ErrUnknownAction) {
			t.Errorf("esperava ErrUnknownAction, obteve %v", err)
		}
		if users.users[target.ID].IsBanned || users.users[target.ID].Role != entities.RoleUser {
			t.Error("esperava alvo inalterado")
		}
	})

	t.Run("usuário comum é rejeitado sem mutação", func(t *testing.T) {
		service, users, _ := newAdminFixture()
		common := users.add(&entities.User{Nickname: "comum", Role: entities.RoleUser})
		target := users.add(&entities.User{Nickname: "alvo", Role: entities.RoleUser})

		err := service.SetUserStatus(ctx, common.ID, target.ID, ActionBan)
		if !errs.Is(err, errors.ErrForbidden) {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
		if users.users[target.ID].IsBanned {
			t.Error("esperava alvo inalterado")
		}
	})
}
