package insight

import "context"

// ComponentStatus represents the status of system components
type ComponentStatus string

const (
	StatusUp   ComponentStatus = "up"
	StatusDown ComponentStatus = "down"
)

// HealthStatus represents system health status
type HealthStatus struct {
	Status     string `json:"status"`
	Components struct {
		PageLoader  ComponentStatus `json:"pageLoader"`
		Ollama      ComponentStatus `json:"ollama"`
		VectorStore ComponentStatus `json:"vectorStore"`
	} `json:"components"`
}

// Pinger reports whether an external collaborator is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type systemService struct {
	loader Pinger
	llm    Pinger
	store  Pinger
}

// SystemService checks the health of the external collaborators.
type SystemService interface {
	CheckHealth(ctx context.Context) (*HealthStatus, error)
}

func NewSystemService(loader, llm, store Pinger) SystemService {
	return &systemService{
		loader: loader,
		llm:    llm,
		store:  store,
	}
}

func (s *systemService) CheckHealth(ctx context.Context) (*HealthStatus, error) {
	status := &HealthStatus{
		Status: "healthy",
	}
	status.Components.PageLoader = check(ctx, s.loader)
	status.Components.Ollama = check(ctx, s.llm)
	status.Components.VectorStore = check(ctx, s.store)

	if status.Components.PageLoader == StatusDown ||
		status.Components.Ollama == StatusDown ||
		status.Components.VectorStore == StatusDown {
		status.Status = "unhealthy"
	}

	return status, nil
}

func check(ctx context.Context, p Pinger) ComponentStatus {
	if p == nil {
		return StatusDown
	}
	if err := p.Ping(ctx); err != nil {
		return StatusDown
	}
	return StatusUp
}
