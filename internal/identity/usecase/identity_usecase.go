package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/taskmanager/internal/database"
	apperrors "github.com/allisson/taskmanager/internal/errors"
	"github.com/allisson/taskmanager/internal/identity/domain"
	"github.com/allisson/taskmanager/internal/identity/service"
	appValidation "github.com/allisson/taskmanager/internal/validation"
)

// identityUseCase handles identity-related business logic.
type identityUseCase struct {
	txManager    database.TxManager
	identityRepo IdentityRepository
	hasher       service.CredentialHasher
	tokenService service.TokenService
}

// NewIdentityUseCase creates a new IdentityUseCase.
func NewIdentityUseCase(
	txManager database.TxManager,
	identityRepo IdentityRepository,
	hasher service.CredentialHasher,
	tokenService service.TokenService,
) IdentityUseCase {
	return &identityUseCase{
		txManager:    txManager,
		identityRepo: identityRepo,
		hasher:       hasher,
		tokenService: tokenService,
	}
}

// validateRegisterInput validates registration fields before any storage access.
func (uc *identityUseCase) validateRegisterInput(input RegisterInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			validation.Length(3, 100).Error("username must be between 3 and 100 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(0, 128).Error("password must be at most 128 characters"),
			appValidation.PasswordStrength{MinLength: 6},
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 200).Error("email must be between 5 and 200 characters"),
		),
		validation.Field(&input.Phone,
			validation.Required.Error("phone is required"),
			appValidation.NotBlank,
			validation.Length(1, 20).Error("phone must be between 1 and 20 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new identity with a freshly derived credential and
// issues its first token.
func (uc *identityUseCase) Register(ctx context.Context, input RegisterInput) (*AuthOutput, error) {
	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	credential, err := uc.hasher.Derive(input.Password)
	if err != nil {
		return nil, err
	}

	identity := &domain.Identity{
		Username:   strings.TrimSpace(input.Username),
		Email:      strings.TrimSpace(strings.ToLower(input.Email)),
		Phone:      strings.TrimSpace(input.Phone),
		Credential: credential,
	}

	// Conflict check and insert share a transaction to narrow the race
	// window; the unique constraints still backstop concurrent registrations.
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		exists, err := uc.identityRepo.ExistsByUsernameOrEmail(ctx, identity.Username, identity.Email)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrIdentityAlreadyExists
		}
		return uc.identityRepo.Create(ctx, identity)
	})
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := uc.tokenService.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Identity: identity, Token: token, ExpiresAt: expiresAt}, nil
}

// Login verifies the password and issues a token.
//
// Unknown usernames and password mismatches return the same
// ErrInvalidCredentials so a caller cannot tell which part was wrong.
func (uc *identityUseCase) Login(ctx context.Context, input LoginInput) (*AuthOutput, error) {
	identity, err := uc.identityRepo.GetByUsername(ctx, strings.TrimSpace(input.Username))
	if err != nil {
		if apperrors.Is(err, domain.ErrIdentityNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !uc.hasher.Verify(input.Password, identity.Credential) {
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := uc.tokenService.Issue(identity)
	if err != nil {
		return nil, err
	}

	return &AuthOutput{Identity: identity, Token: token, ExpiresAt: expiresAt}, nil
}

// validateUpdateSelfInput validates only the fields present in the input.
func (uc *identityUseCase) validateUpdateSelfInput(input UpdateSelfInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Email,
			appValidation.Email,
			validation.Length(5, 200).Error("email must be between 5 and 200 characters"),
		),
		validation.Field(&input.Phone,
			appValidation.NotBlank,
			validation.Length(1, 20).Error("phone must be between 1 and 20 characters"),
		),
		validation.Field(&input.Password,
			validation.Length(0, 128).Error("password must be at most 128 characters"),
			appValidation.PasswordStrength{MinLength: 6},
		),
	)
	return appValidation.WrapValidationError(err)
}

// UpdateSelf applies self-service edits to the calling identity. The target
// id always comes from validated token claims, never from the request body.
func (uc *identityUseCase) UpdateSelf(
	ctx context.Context,
	identityID int64,
	input UpdateSelfInput,
) (*domain.Identity, error) {
	if err := uc.validateUpdateSelfInput(input); err != nil {
		return nil, err
	}

	identity, err := uc.identityRepo.GetByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		identity.Email = strings.TrimSpace(strings.ToLower(*input.Email))
	}
	if input.Phone != nil {
		identity.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Password != nil {
		credential, err := uc.hasher.Derive(*input.Password)
		if err != nil {
			return nil, err
		}
		identity.Credential = credential
	}

	if err := uc.identityRepo.Update(ctx, identity); err != nil {
		return nil, err
	}

	return identity, nil
}
