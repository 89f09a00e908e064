package app

import (
	"fmt"

	taskRepository "github.com/allisson/taskmanager/internal/task/repository"
	taskUsecase "github.com/allisson/taskmanager/internal/task/usecase"
)

// TaskRepository returns the task repository based on database driver.
func (c *Container) TaskRepository() (taskUsecase.TaskRepository, error) {
	var err error
	c.taskRepoInit.Do(func() {
		c.taskRepo, err = c.initTaskRepository()
		if err != nil {
			c.initErrors["taskRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["taskRepo"]; exists {
		return nil, storedErr
	}
	return c.taskRepo, nil
}

// TaskUseCase returns the task use case.
func (c *Container) TaskUseCase() (taskUsecase.TaskUseCase, error) {
	var err error
	c.taskUseCaseInit.Do(func() {
		c.taskUseCase, err = c.initTaskUseCase()
		if err != nil {
			c.initErrors["taskUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["taskUseCase"]; exists {
		return nil, storedErr
	}
	return c.taskUseCase, nil
}

// initTaskRepository creates the task repository instance.
func (c *Container) initTaskRepository() (taskUsecase.TaskRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for task repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return taskRepository.NewMySQLTaskRepository(db), nil
	case "postgres":
		return taskRepository.NewPostgreSQLTaskRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTaskUseCase creates the task use case with all its dependencies.
func (c *Container) initTaskUseCase() (taskUsecase.TaskUseCase, error) {
	taskRepo, err := c.TaskRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get task repository for task use case: %w", err)
	}

	useCase := taskUsecase.NewTaskUseCase(taskRepo)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for task use case: %w", err)
		}
		useCase = taskUsecase.NewTaskUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
