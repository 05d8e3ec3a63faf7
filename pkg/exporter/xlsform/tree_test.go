package xlsform

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/the-deep/qber-backend/pkg/qbank/taxonomy"
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

func matrix2DGroup(c1 taxonomy.Category1, c2 taxonomy.Category2, c3 taxonomy.Category3, c4 taxonomy.Category4) qbankTypes.LeafGroup {
	return qbankTypes.LeafGroup{
		ID:        primitive.NewObjectID(),
		Type:      taxonomy.LEAF_GROUP_TYPE_MATRIX_2D,
		Name:      qbankTypes.DefaultLeafGroupName(taxonomy.CategoryTuple{Category1: c1, Category2: c2, Category3: c3, Category4: c4}),
		Category1: c1,
		Category2: c2,
		Category3: c3,
		Category4: c4,
	}
}

func matrix1DGroup(c1 taxonomy.Category1, c2 taxonomy.Category2) qbankTypes.LeafGroup {
	return qbankTypes.LeafGroup{
		ID:        primitive.NewObjectID(),
		Type:      taxonomy.LEAF_GROUP_TYPE_MATRIX_1D,
		Name:      qbankTypes.DefaultLeafGroupName(taxonomy.CategoryTuple{Category1: c1, Category2: c2}),
		Category1: c1,
		Category2: c2,
	}
}

func TestBuildGroupTreeNesting(t *testing.T) {
	groups := []qbankTypes.LeafGroup{
		matrix2DGroup(taxonomy.Category1Impact, taxonomy.Category2Drivers, taxonomy.Category3Health, taxonomy.Category4Cross),
		matrix2DGroup(taxonomy.Category1Impact, taxonomy.Category2Drivers, taxonomy.Category3Health, taxonomy.Category4HealthCare),
		matrix2DGroup(taxonomy.Category1Impact, taxonomy.Category2Drivers, taxonomy.Category3Health, taxonomy.Category4HealthStatus),
	}

	tree := BuildGroupTree(groups)

	if len(tree) != 1 {
		t.Fatalf("expected one root branch, got %d", len(tree))
	}
	impact := tree[0]
	if impact.IsLeaf || impact.Label != "Impact" {
		t.Errorf("unexpected root node: %+v", impact)
	}
	if len(impact.Children) != 1 {
		t.Fatalf("expected one sub pillar branch, got %d", len(impact.Children))
	}
	drivers := impact.Children[0]
	if drivers.Label != "Drivers" || len(drivers.Children) != 1 {
		t.Fatalf("unexpected sub pillar node: %+v", drivers)
	}
	health := drivers.Children[0]
	if health.Label != "Health" {
		t.Errorf("unexpected sector node: %+v", health)
	}
	if len(health.Children) != 3 {
		t.Fatalf("expected three leaf nodes, got %d", len(health.Children))
	}
	for i, leaf := range health.Children {
		if !leaf.IsLeaf {
			t.Errorf("expected leaf node at %d: %+v", i, leaf)
		}
		if leaf.LeafGroupID != groups[i].ID.Hex() {
			t.Errorf("leaf order not preserved at %d", i)
		}
		expectedParents := []string{impact.Key, drivers.Key, health.Key, leaf.Key}
		if !reflect.DeepEqual(leaf.ParentKeys, expectedParents) {
			t.Errorf("unexpected parent keys: %v, expected: %v", leaf.ParentKeys, expectedParents)
		}
	}
}

func TestBuildGroupTreeOrdering(t *testing.T) {
	t.Run("leaves before branches", func(t *testing.T) {
		// synthetic mixed depth input: one item is already a leaf at
		// this level, the other still branches
		items := []treeItem{
			{id: "branch-item", categories: []qbankTypes.CategoryKeyLabel{
				{Key: "a", Label: "A"},
				{Key: "b", Label: "B"},
			}},
			{id: "leaf-item", categories: []qbankTypes.CategoryKeyLabel{
				{Key: "c", Label: "C"},
			}},
		}

		nodes := buildTreeNodes(items, nil)
		if len(nodes) != 2 {
			t.Fatalf("expected two nodes, got %d", len(nodes))
		}
		if !nodes[0].IsLeaf || nodes[0].LeafGroupID != "leaf-item" {
			t.Errorf("expected the leaf node first, got: %+v", nodes[0])
		}
		if nodes[1].IsLeaf || nodes[1].Key != "a" {
			t.Errorf("expected the branch node second, got: %+v", nodes[1])
		}
	})

	t.Run("branches in first-seen order", func(t *testing.T) {
		groups := []qbankTypes.LeafGroup{
			matrix1DGroup(taxonomy.Category1Displacement, taxonomy.Category2PullFactors),
			matrix1DGroup(taxonomy.Category1Context, taxonomy.Category2Politics),
			matrix1DGroup(taxonomy.Category1Displacement, taxonomy.Category2PushFactors),
		}

		tree := BuildGroupTree(groups)
		if len(tree) != 2 {
			t.Fatalf("expected two branches, got %d", len(tree))
		}
		if tree[0].Label != "Displacement" || tree[1].Label != "Context" {
			t.Errorf("branch order not first-seen: %s, %s", tree[0].Label, tree[1].Label)
		}
	})

	t.Run("stable across repeated builds", func(t *testing.T) {
		groups := []qbankTypes.LeafGroup{
			matrix1DGroup(taxonomy.Category1Casualties, taxonomy.Category2Dead),
			matrix2DGroup(taxonomy.Category1AtRisk, taxonomy.Category2PeopleAtRisk, taxonomy.Category3WASH, taxonomy.Category4WaterSupply),
			matrix1DGroup(taxonomy.Category1Casualties, taxonomy.Category2Injured),
			matrix2DGroup(taxonomy.Category1AtRisk, taxonomy.Category2PeopleAtRisk, taxonomy.Category3WASH, taxonomy.Category4VectorControl),
		}

		first := BuildGroupTree(groups)
		second := BuildGroupTree(groups)
		if !reflect.DeepEqual(first, second) {
			t.Error("tree not identical across repeated builds of the same input")
		}
	})
}
