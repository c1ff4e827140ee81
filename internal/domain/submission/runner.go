package submission

import "context"

// Policy define qué hacer cuando una tarea falla.
type Policy int

const (
	// StopOnFirstFailure corta en la primera falla; el resto no se intenta.
	StopOnFirstFailure Policy = iota
	// ContinueOnFailure intenta todas y reporta cada falla.
	ContinueOnFailure
)

func (p Policy) String() string {
	if p == ContinueOnFailure {
		return "continue"
	}
	return "stop"
}

// Task es una unidad de trabajo de la cola.
type Task func(ctx context.Context) error

type Failure struct {
	Index int // posición en la cola (0-based)
	Err   error
}

type Report struct {
	Attempted int
	Succeeded int
	Failures  []Failure
}

func (r Report) OK() bool { return len(r.Failures) == 0 }

// Runner procesa tareas en orden, una a la vez. Nunca en paralelo.
type Runner struct {
	Policy Policy

	// OnResult es opcional (logging/progreso).
	OnResult func(index int, err error)
}

func (r Runner) Run(ctx context.Context, tasks []Task) Report {
	var rep Report

	for i, task := range tasks {
		// contexto cancelado (shutdown): cuenta como falla de la tarea pendiente
		if err := ctx.Err(); err != nil {
			rep.Failures = append(rep.Failures, Failure{Index: i, Err: err})
			break
		}

		rep.Attempted++
		err := task(ctx)
		if r.OnResult != nil {
			r.OnResult(i, err)
		}

		if err == nil {
			rep.Succeeded++
			continue
		}

		rep.Failures = append(rep.Failures, Failure{Index: i, Err: err})
		if r.Policy == StopOnFirstFailure {
			break
		}
	}

	return rep
}
