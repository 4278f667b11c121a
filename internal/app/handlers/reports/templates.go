package reports

import (
	"context"

	"lynx/internal/app/commands"
	"lynx/internal/app/dto"
	"lynx/internal/app/handlers/support"
	"lynx/internal/app/queries"
	"lynx/internal/app/uow"
	"lynx/internal/domain/preferences"
	domainreports "lynx/internal/domain/reports"
)

const (
	listTemplatesKey  = "reports.templates.list"
	putTemplateKey    = "reports.templates.put"
	deleteTemplateKey = "reports.templates.delete"
)

type ListTemplatesQuery struct{}

func (ListTemplatesQuery) Key() string { return listTemplatesKey }

type ListTemplatesHandler struct {
	UoWFactory uow.UoWFactory
}

// Handle returns built-in templates first, then the user's by name.
func (h *ListTemplatesHandler) Handle(ctx context.Context, _ ListTemplatesQuery) (dto.Templates, error) {
	unit, execCtx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Templates{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	user, warnings, err := unit.Preferences().Templates(execCtx)
	if err != nil {
		return dto.Templates{}, err
	}
	return dto.Templates{Items: domainreports.Merge(user), Warnings: warnings}, nil
}

type PutTemplateCommand struct {
	Template domainreports.Template `validate:"-"`
}

func (c PutTemplateCommand) Key() string { return putTemplateKey }

func (c PutTemplateCommand) Validate() error { return c.Template.Validate() }

type PutTemplateHandler struct{}

func (PutTemplateHandler) Handle(ctx context.Context, cmd PutTemplateCommand) (domainreports.Template, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return domainreports.Template{}, err
	}
	current, _, err := unit.Preferences().Templates(ctx)
	if err != nil {
		return domainreports.Template{}, err
	}
	next, err := preferences.PutTemplate(current, cmd.Template)
	if err != nil {
		return domainreports.Template{}, err
	}
	if err := unit.Preferences().SaveTemplates(ctx, next); err != nil {
		return domainreports.Template{}, err
	}
	return next[cmd.Template.Name], nil
}

type DeleteTemplateCommand struct {
	Name string `validate:"required"`
}

func (c DeleteTemplateCommand) Key() string { return deleteTemplateKey }

type DeleteTemplateHandler struct{}

func (DeleteTemplateHandler) Handle(ctx context.Context, cmd DeleteTemplateCommand) (struct{}, error) {
	unit, err := support.WriteUnit(ctx)
	if err != nil {
		return struct{}{}, err
	}
	current, _, err := unit.Preferences().Templates(ctx)
	if err != nil {
		return struct{}{}, err
	}
	next, err := preferences.DeleteTemplate(current, cmd.Name)
	if err != nil {
		return struct{}{}, err
	}
	return struct{}{}, unit.Preferences().SaveTemplates(ctx, next)
}

var _ queries.Handler[ListTemplatesQuery, dto.Templates] = (*ListTemplatesHandler)(nil)
var _ commands.Handler[PutTemplateCommand, domainreports.Template] = PutTemplateHandler{}
var _ commands.Handler[DeleteTemplateCommand, struct{}] = DeleteTemplateHandler{}
