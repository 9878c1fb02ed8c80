package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pizzabot/internal/chat"
	"pizzabot/internal/models"
)

// lineRenderer is a line-oriented chat.Renderer for pipes and dumb terminals.
type lineRenderer struct {
	in  *bufio.Scanner
	out io.Writer
}

func newLineRenderer(in io.Reader, out io.Writer) *lineRenderer {
	return &lineRenderer{in: bufio.NewScanner(in), out: out}
}

func (r *lineRenderer) ShowMessage(role chat.Role, text string) {
	if role == chat.RoleUser {
		return
	}
	fmt.Fprintf(r.out, "Bot: %s\n", text)
}

func (r *lineRenderer) ShowImage(ref, caption string) {
	fmt.Fprintf(r.out, "[image %s] %s\n", ref, caption)
}

func (r *lineRenderer) PromptInput() (string, bool) {
	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			return "", false
		}
		line := strings.TrimSpace(r.in.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return "", false
		}
		return line, true
	}
}

// runRemote is the line-oriented conversation against a Backend.
// Slash commands map onto the cart and checkout endpoints.
func runRemote(ctx context.Context, client Backend, welcome chat.Reply, r chat.Renderer) error {
	chat.Render(r, welcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := r.PromptInput()
		if !ok {
			return nil
		}

		reply, err := remoteLine(ctx, client, line)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
				r.ShowMessage(chat.RoleAssistant, apiErr.Error())
				continue
			}
			if models.IsValidation(err) {
				r.ShowMessage(chat.RoleAssistant, err.Error())
				continue
			}
			return err
		}
		chat.Render(r, reply)
	}
}

func remoteLine(ctx context.Context, client Backend, line string) (chat.Reply, error) {
	if !strings.HasPrefix(line, "/") {
		return client.Send(ctx, line)
	}

	name, args, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	args = strings.TrimSpace(args)
	switch strings.ToLower(name) {
	case "add":
		return client.AddItem(ctx, args)
	case "clear":
		return client.ClearCart(ctx)
	case "checkout":
		receipt, err := client.Checkout(ctx, parseCheckout(args))
		if err != nil {
			return chat.Reply{}, err
		}
		return chat.Reply{Text: receipt.Text}, nil
	case "help":
		return chat.Reply{Text: chatHelp}, nil
	default:
		return chat.Reply{Text: "Unknown command /" + name}, nil
	}
}
