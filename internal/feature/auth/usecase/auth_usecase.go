// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"counter_backend/internal/feature/auth/domain/entity"
)

const (
	// DefaultEmail はセットアップで作成されるデフォルトユーザーのメールアドレスです。
	DefaultEmail = "admin@example.com"

	// defaultPassword はデフォルトユーザーの初期パスワードです。
	// 保存前に必ずbcryptでハッシュ化されます。
	defaultPassword = "admin"

	// bcryptCost はパスワードハッシュのコストファクターです。
	bcryptCost = 10
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// UpsertByEmail はメールアドレスをキーにユーザーを作成します。
	// 既に存在する場合は何も変更せず、既存のレコードを返します（冪等）。
	UpsertByEmail(ctx context.Context, user *entity.User) (*entity.User, error)

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// TokenGenerator はセッショントークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	tokens TokenGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, tokens TokenGenerator) *authUsecase {
	return &authUsecase{
		users:  users,
		tokens: tokens,
	}
}

// Setup はデフォルトユーザーをプロビジョニングします。
// メールアドレスをキーとするupsertなので、何度呼んでも1行しか作成されません。
// 既存ユーザーのパスワードは上書きされません。
func (u *authUsecase) Setup(ctx context.Context) (*entity.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Email: DefaultEmail, Password: string(hashed)}
	created, err := u.users.UpsertByEmail(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert default user: %w", err)
	}
	return created, nil
}

// Login はユーザーを認証し、成功時にユーザーIDと署名済みセッショントークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
// トークン生成に失敗してもログインは成功扱いとし、トークンは空文字列になります
// （x-user-idヘッダーによるベアラー識別が引き続き有効なため）。
func (u *authUsecase) Login(ctx context.Context, email, password string) (uint, string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return 0, "", ErrInvalidCredentials
	}

	token, tokenErr := u.tokens.GenerateToken(user.ID, user.Email)
	if tokenErr != nil {
		slog.Warn("session token generation failed; login continues with bearer id only", "error", tokenErr)
		token = ""
	}

	return user.ID, token, nil
}
