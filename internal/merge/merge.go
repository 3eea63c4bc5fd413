package merge

import (
	"slices"

	"github.com/amishk599/jobagg/internal/model"
	"github.com/amishk599/jobagg/internal/normalize"
)

// MergeDistinct folds jobs, in the order given, into one MergedJob per
// normalized (title, company) key. Output keeps first-appearance order.
func MergeDistinct(jobs []model.Job) []model.MergedJob {
	index := make(map[string]int, len(jobs))
	merged := make([]model.MergedJob, 0, len(jobs))

	for _, j := range jobs {
		key := normalize.Key(j.Title, j.Company)
		i, ok := index[key]
		if !ok {
			index[key] = len(merged)
			merged = append(merged, seed(j))
			continue
		}
		merged[i] = combine(merged[i], j)
	}
	return merged
}

// seed starts a merged record from the first job seen for a key.
func seed(j model.Job) model.MergedJob {
	return model.MergedJob{
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		ApplyURL:    j.ApplyURL,
		Source:      j.Source,
		SourceFrom:  []model.Source{j.Source},
	}
}

// combine folds a later duplicate into acc. Fields already set on acc win;
// next only back-fills description, location and apply_url when they are empty.
func combine(acc model.MergedJob, next model.Job) model.MergedJob {
	if !slices.Contains(acc.SourceFrom, next.Source) {
		acc.SourceFrom = append(slices.Clone(acc.SourceFrom), next.Source)
	}
	if acc.Description == "" {
		acc.Description = next.Description
	}
	if acc.Location == "" {
		acc.Location = next.Location
	}
	if acc.ApplyURL == "" {
		acc.ApplyURL = next.ApplyURL
	}
	return acc
}
