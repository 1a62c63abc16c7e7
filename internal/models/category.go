package models

import "time"

type Category struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	ParentID  string    `bson:"parent_id,omitempty" json:"parentId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// CategoryNode is one node of the materialized category tree.
type CategoryNode struct {
	Category `bson:",inline"`
	Children []*CategoryNode `json:"children"`
}

// CategoryDetail is a single category with its relations resolved,
// returned by the lookup and admin listing endpoints.
type CategoryDetail struct {
	Category      `bson:",inline"`
	Parent        *Category  `json:"parent,omitempty"`
	Children      []Category `json:"children"`
	QuestionCount int64      `json:"question_count"`
}
