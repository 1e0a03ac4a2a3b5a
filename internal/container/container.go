package container

import (
	app "islet-seg/internal/application"
	"islet-seg/internal/domain/port"
)

type Container struct {
	UserService         *app.UserService
	SegmentationService *app.SegmentationService
}

func New(userRepo port.UserRepository, model port.Model, results port.ResultPersister, measurer port.ROIMeasurer) *Container {
	userService := app.NewUserService(userRepo)
	segmentationService := app.NewSegmentationService(model, results, measurer)

	return &Container{
		UserService:         userService,
		SegmentationService: segmentationService,
	}
}
