package comments

import "Bulletin/internal/core/pagination"

// page is one slice of a post's comment set with threading kept intact
type page struct {
	comments   []*Comment
	hasNext    bool
	nextCursor *string
}

// paginateByParent pages a post's full comment set by top-level comment
// count. Only depth-0 comments count toward the limit; every reply whose
// parent made the page is included alongside it, so a parent and its
// replies are never split across pages.
//
// all must be ordered by ascending id. afterID is the decoded cursor (nil
// for the first page): parents with id <= afterID are skipped.
func paginateByParent(all []*Comment, afterID *int64, limit int) page {
	var candidates []*Comment
	for _, c := range all {
		if c.Depth != DepthDefault {
			continue
		}
		if afterID != nil && c.ID <= *afterID {
			continue
		}
		candidates = append(candidates, c)
	}

	hasNext := len(candidates) > limit
	parents := candidates
	if hasNext {
		parents = candidates[:limit]
	}

	parentIDs := make(map[int64]bool, len(parents))
	for _, p := range parents {
		parentIDs[p.ID] = true
	}

	var result []*Comment
	for _, c := range all {
		switch {
		case c.Depth == DepthDefault && parentIDs[c.ID]:
			result = append(result, c)
		case c.Depth != DepthDefault && c.ParentCommentID != nil && parentIDs[*c.ParentCommentID]:
			result = append(result, c)
		}
	}

	var nextCursor *string
	if hasNext && len(parents) > 0 {
		cursor := pagination.EncodeCursor(parents[len(parents)-1].ID)
		nextCursor = &cursor
	}

	return page{
		comments:   result,
		hasNext:    hasNext,
		nextCursor: nextCursor,
	}
}

// assembleThreads groups a flat page of comments into top-level comments
// each carrying its direct replies, preserving the order the comments were
// returned in. Depth is capped at one level, so this is a single grouping
// pass, not a general tree build.
func assembleThreads(comments []*Comment) []*CommentThread {
	threads := make([]*CommentThread, 0, len(comments))
	byParent := make(map[int64]*CommentThread)

	for _, c := range comments {
		if c.Depth == DepthDefault {
			thread := &CommentThread{Comment: c, Replies: []*Comment{}}
			threads = append(threads, thread)
			byParent[c.ID] = thread
		}
	}

	for _, c := range comments {
		if c.Depth == DepthDefault || c.ParentCommentID == nil {
			continue
		}
		if thread, ok := byParent[*c.ParentCommentID]; ok {
			thread.Replies = append(thread.Replies, c)
		}
	}

	return threads
}
