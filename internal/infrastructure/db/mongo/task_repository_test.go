package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestSortSpec(t *testing.T) {
	cases := []struct {
		sort string
		want bson.D
	}{
		{"", bson.D{{Key: "created_at", Value: -1}}},
		{"createdAt", bson.D{{Key: "created_at", Value: 1}}},
		{"-createdAt", bson.D{{Key: "created_at", Value: -1}}},
		{"dueDate", bson.D{{Key: "due_date", Value: 1}}},
		{"-dueDate", bson.D{{Key: "due_date", Value: -1}}},
		// Anything outside the whitelist falls back to the default.
		{"password", bson.D{{Key: "created_at", Value: -1}}},
		{"-__proto__", bson.D{{Key: "created_at", Value: -1}}},
	}

	for _, tc := range cases {
		got := sortSpec(tc.sort)
		if len(got) != 1 || got[0].Key != tc.want[0].Key || got[0].Value != tc.want[0].Value {
			t.Errorf("sortSpec(%q) = %v, want %v", tc.sort, got, tc.want)
		}
	}
}
