package api

import (
	"github.com/lysyi3m/atomsmith/app/database"
	"github.com/lysyi3m/atomsmith/app/tasks"
)

type Handler struct {
	site         string
	artifactRepo database.ArtifactRepository
	scheduler    tasks.TaskSchedulerInterface
	newTask      tasks.TaskFactory
}
