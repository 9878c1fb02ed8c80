package chat

import (
	"context"

	"pizzabot/internal/logger"
	"pizzabot/internal/models"
)

// Renderer displays a conversation and collects user input.
type Renderer interface {
	ShowMessage(role Role, text string)
	ShowImage(ref, caption string)
	// PromptInput blocks for the next line; false means the user is done.
	PromptInput() (string, bool)
}

// Render shows reply on r.
func Render(r Renderer, reply Reply) {
	if reply.Text != "" {
		r.ShowMessage(RoleAssistant, reply.Text)
	}
	if reply.Image != nil {
		r.ShowImage(reply.Image.Ref, reply.Image.Caption)
	}
}

// Run drives a line-oriented conversation until the renderer stops returning
// input or ctx is done. Validation errors are shown to the user; other errors
// end the loop.
func Run(ctx context.Context, e *Engine, s *Session, r Renderer) error {
	welcome, err := e.Welcome(s)
	if err != nil {
		return err
	}
	Render(r, welcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := r.PromptInput()
		if !ok {
			return nil
		}
		r.ShowMessage(RoleUser, line)

		reply, err := e.Handle(ctx, s, line)
		if err != nil {
			if models.IsValidation(err) {
				r.ShowMessage(RoleAssistant, err.Error())
				continue
			}
			logger.FromContext(ctx).WithError(err).Error("Failed to handle message")
			return err
		}
		Render(r, reply)
	}
}
