package listing

// PostSpec lists the filters, search columns and ordering fields accepted by the post list.
var PostSpec = Spec{
	Filters: map[string]Filter{
		"board":  {Column: "posts.board_id", Match: Exact},
		"author": {Column: "posts.author_id", Match: Exact},
		"author_username": {
			Column: "users.username",
			Match:  IContains,
			Where:  "posts.author_id IN (SELECT users.id FROM users WHERE " + likeClause("users.username") + ")",
		},
	},

	SearchParam:   "search",
	SearchColumns: []string{"posts.title", "posts.content"},

	OrderingParam: "ordering",
	Ordering: map[string]string{
		"created_at":     "posts.created_at",
		"views":          "posts.views",
		"content_length": "LENGTH(posts.content)",
		"content_len":    "LENGTH(posts.content)",
	},
	DefaultOrdering: []string{"-created_at"},
	Tiebreak:        "posts.id DESC",
}
