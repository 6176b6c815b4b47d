package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manualdex/manualdex"
	"github.com/manualdex/manualdex/gemini"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	catalog, err := deps.Catalog.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
		return err
	}

	req := manualdex.GenerateRequest{Prompt: c.Question}

	// Attach the best-matching manual so the answer is grounded in the
	// actual documentation rather than general knowledge.
	var matched *manualdex.Manual
	if match := manualdex.FindBestMatch(c.Question, catalog); match != nil && match.Score >= c.MinScore {
		data, err := deps.Source.Fetch(deps.Ctx, match.Manual.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
			return err
		}
		matched = match.Manual
		req.Attachments = append(req.Attachments, manualdex.Attachment{
			Name:     matched.DisplayName,
			MIMEType: gemini.MIMETypeForName(matched.DisplayName),
			Data:     data,
		})
	}

	// A photo from the user (nameplate, error display) is essential
	// context: it survives the content-block fallback, manuals do not.
	if c.Image != "" {
		data, err := os.ReadFile(c.Image)
		if err != nil {
			return err
		}
		req.Attachments = append(req.Attachments, manualdex.Attachment{
			Name:      filepath.Base(c.Image),
			MIMEType:  gemini.MIMETypeForName(c.Image),
			Data:      data,
			Essential: true,
		})
	}

	conv, err := c.resolveConversation(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
		return err
	}
	if conv != nil {
		msgs, err := deps.Conversations.FindMessages(deps.Ctx, conv.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
			return err
		}
		for _, msg := range msgs {
			req.History = append(req.History, *msg)
		}
	}

	answer, err := deps.Generator.Generate(deps.Ctx, req)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
		return err
	}

	if conv == nil {
		conv = &manualdex.Conversation{Title: conversationTitle(c.Question)}
		if err := deps.Conversations.CreateConversation(deps.Ctx, conv); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
			return err
		}
	}
	for _, msg := range []*manualdex.Message{
		{ConversationID: conv.ID, Role: manualdex.RoleUser, Content: c.Question},
		{ConversationID: conv.ID, Role: manualdex.RoleAssistant, Content: answer},
	} {
		if err := deps.Conversations.CreateMessage(deps.Ctx, msg); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", manualdex.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintln(deps.Stdout, answer)
	if matched != nil {
		fmt.Fprintf(deps.Stdout, "\nsource: %s\n", matched.DisplayName)
	} else {
		fmt.Fprintln(deps.Stdout, "\nsource: general knowledge (no matching manual in the catalog)")
	}
	fmt.Fprintf(deps.Stdout, "conversation: %s\n", conv.ID)
	return nil
}

// resolveConversation returns the conversation to continue, or nil when the
// question starts a fresh one.
func (c *AskCmd) resolveConversation(deps *Dependencies) (*manualdex.Conversation, error) {
	if c.Conversation == "" {
		return nil, nil
	}
	return deps.Conversations.FindConversationByID(deps.Ctx, c.Conversation)
}

// conversationTitle derives a short title from the opening question.
func conversationTitle(question string) string {
	const maxTitle = 60
	title := strings.Join(strings.Fields(question), " ")
	if len(title) > maxTitle {
		title = title[:maxTitle]
	}
	if title == "" {
		title = "untitled"
	}
	return title
}
