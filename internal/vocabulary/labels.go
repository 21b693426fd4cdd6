package vocabulary

import (
	"context"
	"fmt"
)

// buildLabels maps each class's display label to the class. Classes are
// visited in the order given; when two classes share a label the later
// one wins and the earlier mapping is lost.
func buildLabels(ctx context.Context, src Source, classes []string) (map[string]string, error) {
	labels := make(map[string]string, len(classes))
	for _, c := range classes {
		label, ok, err := src.LabelOf(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("failed to get label for %s: %w", c, err)
		}
		if !ok || label == "" {
			label = c
		}
		labels[label] = c
	}
	return labels, nil
}
