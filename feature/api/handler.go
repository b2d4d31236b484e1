package api

import (
	"bytes"
	"errors"
	"strconv"

	"achievement-manager/core/logger"
	"achievement-manager/core/reconcile"
	"achievement-manager/feature/definition"
	"achievement-manager/feature/remote"
	"achievement-manager/feature/report"
	"achievement-manager/feature/sets"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation previews.
type Handler struct {
	sets   *sets.Service
	remote sets.RemoteLoader
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(svc *sets.Service, loader sets.RemoteLoader, logger *zap.Logger) *Handler {
	return &Handler{sets: svc, remote: loader, logger: logger}
}

// RegisterRoutes registers the preview routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)

	group := app.Group("/games")
	group.Get("/:gameId/remote", h.HandleGetRemote)
	group.Post("/:gameId/diff", h.HandleDiff)
}

// HandleHealth reports that the server is up.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleGetRemote returns the remote set of a game.
// Query: setId, includeUnofficial, refetch.
func (h *Handler) HandleGetRemote(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	gameID, err := gameIDParam(c)
	if err != nil {
		return badRequest(c, err)
	}
	setID, err := strconv.ParseUint(c.Query("setId", "0"), 10, 32)
	if err != nil {
		return badRequest(c, errors.New("expected setId as unsigned integer"))
	}

	set, err := h.remote.Load(c.Context(), gameID, remote.LoadOptions{
		ConvertOptions: remote.ConvertOptions{
			SetID:             uint32(setID),
			IncludeUnofficial: c.QueryBool("includeUnofficial"),
		},
		Refetch: c.QueryBool("refetch"),
	})
	if err != nil {
		l.Error("Remote load failed", zap.Uint32("game_id", gameID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
			"hint":  remote.RefetchHint,
		})
	}

	return c.JSON(remoteResponse(set))
}

// HandleDiff plans a reconciliation for the YAML definition in the body.
// Query: filter (repeatable), includeUnofficial, refetch, contextLines, format=json|text.
func (h *Handler) HandleDiff(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	gameID, err := gameIDParam(c)
	if err != nil {
		return badRequest(c, err)
	}

	file, err := definition.Parse(c.Body())
	if err != nil {
		return badRequest(c, err)
	}
	if file.GameID != gameID {
		return badRequest(c, errors.New("gameId of the definition does not match the path"))
	}
	input, err := file.ToSet()
	if err != nil {
		return badRequest(c, err)
	}

	var filterArgs []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("filter") {
		filterArgs = append(filterArgs, string(raw))
	}
	filters, err := reconcile.ParseFilters(filterArgs)
	if err != nil {
		return badRequest(c, err)
	}

	plan, err := h.sets.Plan(c.Context(), input, sets.PlanOptions{
		Filters:           filters,
		IncludeUnofficial: c.QueryBool("includeUnofficial"),
		Refetch:           c.QueryBool("refetch"),
	})
	if err != nil {
		return h.planError(c, l, gameID, err)
	}

	l.Info("Planned reconciliation", zap.Uint32("game_id", gameID), zap.Bool("has_changes", plan.Report.HasChanges()))

	if c.Query("format") == "text" {
		var buf bytes.Buffer
		if _, err := report.NewPrinter(&buf, report.Options{ContextLines: c.QueryInt("contextLines")}).Print(plan.Report); err != nil {
			return err
		}
		return c.Type("txt").Send(buf.Bytes())
	}

	return c.JSON(diffResponse(plan))
}

func (h *Handler) planError(c *fiber.Ctx, l *zap.Logger, gameID uint32, err error) error {
	var ambiguous *reconcile.AmbiguousMatchError
	var integrity *reconcile.IntegrityError

	switch {
	case errors.Is(err, sets.ErrEmptySet):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, sets.ErrRemote):
		l.Error("Remote load failed", zap.Uint32("game_id", gameID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "hint": remote.RefetchHint})
	case errors.As(err, &ambiguous), errors.As(err, &integrity):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}

	l.Error("Reconciliation failed", zap.Uint32("game_id", gameID), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func diffResponse(plan *sets.Plan) DiffResponse {
	r := plan.Report
	res := DiffResponse{
		GameID:          plan.GameID,
		HasChanges:      r.HasChanges(),
		Stats:           nonNil(r.Stats()),
		NewAchievements: nonNil(r.NewAchievements),
		NewLeaderboards: nonNil(r.NewLeaderboards),
		Updated:         []ChangeSummary{},
		Removed: map[string]int{
			"achievements": r.RemovedAchievements,
			"leaderboards": r.RemovedLeaderboards,
		},
		Summary:  plan.Transcript.Summary,
		Actions:  plan.Transcript.Actions,
		Warnings: []string{},
		Lint:     []string{},
		Content:  plan.Content,
	}
	for _, ch := range r.Changes() {
		res.Updated = append(res.Updated, ChangeSummary{
			Kind:    ch.Modified.Kind().String(),
			ID:      ch.Modified.ID(),
			Title:   ch.Modified.Title(),
			Context: ch.Context,
		})
	}
	for _, w := range plan.Transcript.Warnings {
		res.Warnings = append(res.Warnings, w.String())
	}
	for _, issue := range plan.Issues {
		res.Lint = append(res.Lint, issue.Message)
	}
	if res.Actions == nil {
		res.Actions = []reconcile.Action{}
	}
	return res
}

func gameIDParam(c *fiber.Ctx) (uint32, error) {
	id, err := strconv.ParseUint(c.Params("gameId"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("expected gameId as positive integer")
	}
	return uint32(id), nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

