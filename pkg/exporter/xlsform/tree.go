package xlsform

import (
	qbankTypes "github.com/the-deep/qber-backend/pkg/qbank/types"
)

// GroupTreeNode is a derived, export-only structure: the nested group
// tree reconstructed from the flat category tagged leaf groups. Built
// fresh on every export, never persisted.
type GroupTreeNode struct {
	Key        string
	Label      string
	ParentKeys []string
	// Set on leaf nodes only
	LeafGroupID string
	IsLeaf      bool
	Children    []GroupTreeNode
}

type treeItem struct {
	id         string
	categories []qbankTypes.CategoryKeyLabel
}

// BuildGroupTree reconstructs the nested group tree from the flat leaf
// group list. Ordering is load-bearing: at each level leaf nodes come
// first in their original relative order, then branch nodes in first-seen
// order of their shared category key. Repeated exports of unchanged data
// must produce identical trees.
func BuildGroupTree(leafGroups []qbankTypes.LeafGroup) []GroupTreeNode {
	items := make([]treeItem, 0, len(leafGroups))
	for _, lg := range leafGroups {
		items = append(items, treeItem{
			id:         lg.ID.Hex(),
			categories: lg.Categories(),
		})
	}
	return buildTreeNodes(items, nil)
}

func buildTreeNodes(items []treeItem, parentKeys []string) []GroupTreeNode {
	var leafItems []treeItem
	var branchItems []treeItem
	for _, item := range items {
		if len(item.categories) > 1 {
			branchItems = append(branchItems, item)
		} else if len(item.categories) == 1 {
			leafItems = append(leafItems, item)
		}
		// zero remaining categories cannot occur for validated groups
	}

	nodes := make([]GroupTreeNode, 0, len(items))

	for _, item := range leafItems {
		category := item.categories[0]
		nodes = append(nodes, GroupTreeNode{
			Key:         category.Key,
			Label:       category.Label,
			ParentKeys:  appendKey(parentKeys, category.Key),
			LeafGroupID: item.id,
			IsLeaf:      true,
		})
	}

	// Group branch items by their first remaining category, keeping
	// first-seen key order.
	var branchKeys []string
	grouped := map[string][]treeItem{}
	branchLabels := map[string]string{}
	for _, item := range branchItems {
		first := item.categories[0]
		if _, ok := grouped[first.Key]; !ok {
			branchKeys = append(branchKeys, first.Key)
			branchLabels[first.Key] = first.Label
		}
		grouped[first.Key] = append(grouped[first.Key], treeItem{
			id:         item.id,
			categories: item.categories[1:],
		})
	}

	for _, key := range branchKeys {
		childKeys := appendKey(parentKeys, key)
		nodes = append(nodes, GroupTreeNode{
			Key:        key,
			Label:      branchLabels[key],
			ParentKeys: childKeys,
			Children:   buildTreeNodes(grouped[key], childKeys),
		})
	}

	return nodes
}

// appendKey copies before appending so sibling recursions never share a
// backing array.
func appendKey(parentKeys []string, key string) []string {
	keys := make([]string, 0, len(parentKeys)+1)
	keys = append(keys, parentKeys...)
	return append(keys, key)
}
