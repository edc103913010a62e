package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/flowdraft/flowdraft/pkg/generator"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleGenerateError maps pipeline errors onto problem responses. Rejected
// descriptions are the caller's fault, everything else is ours.
func handleGenerateError(c fiber.Ctx, err error) error {
	if errors.Is(err, generator.ErrRejected) {
		problem := problems.NewStatusProblem(422).
			WithInstance(c.Path()).
			WithType("description_rejected").
			WithDetail(err.Error())

		return c.Status(fiber.StatusUnprocessableEntity).JSON(problem)
	}

	return internalError(c, err)
}
