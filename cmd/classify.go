package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bgdnvk/campusbot/internal/intent"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Show which intent a message selects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := newClassifier()
		if err != nil {
			return fmt.Errorf("failed to load keywords: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), describe(classifier.Classify(strings.Join(args, " "))))
		return nil
	},
}

func describe(c intent.Classification) string {
	where := "remote"
	if c.Intent.IsLocal() {
		where = "local"
	}
	topics := make([]string, 0, len(c.Topics))
	for _, t := range c.Topics {
		topics = append(topics, string(t))
	}
	topicList := "none"
	if len(topics) > 0 {
		topicList = strings.Join(topics, ",")
	}
	return fmt.Sprintf("intent=%s answer=%s topics=%s", c.Intent, where, topicList)
}
