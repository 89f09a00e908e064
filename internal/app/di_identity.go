package app

import (
	"fmt"

	identityRepository "github.com/allisson/taskmanager/internal/identity/repository"
	identityService "github.com/allisson/taskmanager/internal/identity/service"
	identityUsecase "github.com/allisson/taskmanager/internal/identity/usecase"
)

// CredentialHasher returns the password hashing service.
func (c *Container) CredentialHasher() (identityService.CredentialHasher, error) {
	c.credentialHasherInit.Do(func() {
		c.credentialHasher = identityService.NewCredentialHasher()
	})
	return c.credentialHasher, nil
}

// TokenService returns the token issuing and validation service.
func (c *Container) TokenService() (identityService.TokenService, error) {
	c.tokenServiceInit.Do(func() {
		c.tokenService = identityService.NewTokenService(identityService.TokenConfig{
			SigningSecret: c.config.JWTSigningSecret,
			Issuer:        c.config.JWTIssuer,
			Audience:      c.config.JWTAudience,
			Expiration:    c.config.JWTExpiration,
		})
	})
	return c.tokenService, nil
}

// IdentityRepository returns the identity repository based on database driver.
func (c *Container) IdentityRepository() (identityUsecase.IdentityRepository, error) {
	var err error
	c.identityRepoInit.Do(func() {
		c.identityRepo, err = c.initIdentityRepository()
		if err != nil {
			c.initErrors["identityRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityRepo"]; exists {
		return nil, storedErr
	}
	return c.identityRepo, nil
}

// IdentityUseCase returns the identity use case.
func (c *Container) IdentityUseCase() (identityUsecase.IdentityUseCase, error) {
	var err error
	c.identityUseCaseInit.Do(func() {
		c.identityUseCase, err = c.initIdentityUseCase()
		if err != nil {
			c.initErrors["identityUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["identityUseCase"]; exists {
		return nil, storedErr
	}
	return c.identityUseCase, nil
}

// initIdentityRepository creates the identity repository instance.
func (c *Container) initIdentityRepository() (identityUsecase.IdentityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for identity repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return identityRepository.NewMySQLIdentityRepository(db), nil
	case "postgres":
		return identityRepository.NewPostgreSQLIdentityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initIdentityUseCase creates the identity use case with all its dependencies.
func (c *Container) initIdentityUseCase() (identityUsecase.IdentityUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for identity use case: %w", err)
	}

	identityRepo, err := c.IdentityRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity repository for identity use case: %w", err)
	}

	hasher, err := c.CredentialHasher()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential hasher for identity use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for identity use case: %w", err)
	}

	useCase := identityUsecase.NewIdentityUseCase(txManager, identityRepo, hasher, tokenService)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for identity use case: %w", err)
		}
		useCase = identityUsecase.NewIdentityUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
