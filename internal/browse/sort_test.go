package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/furnishop/internal/catalog"
)

// ============================================
// Sort Tests
// ============================================

func TestSort_Default_PreservesOrder(t *testing.T) {
	products := []catalog.Product{
		{ID: 3, Name: "B", Price: 20},
		{ID: 1, Name: "A", Price: 30},
		{ID: 2, Name: "C", Price: 10},
	}

	got := Sort(products, SortDefault)

	assert.Equal(t, []int64{3, 1, 2}, ids(got))
}

func TestSort_Price(t *testing.T) {
	products := sampleProducts()

	asc := Sort(products, SortPriceAsc)
	assert.Equal(t, []int64{3, 5, 1, 4, 2}, ids(asc))

	desc := Sort(products, SortPriceDesc)
	assert.Equal(t, []int64{2, 4, 1, 5, 3}, ids(desc))
}

func TestSort_Name(t *testing.T) {
	// NameAsc reorders [B, A] to [A, B]; NameDesc is the reverse.
	products := []catalog.Product{
		{ID: 1, Name: "B"},
		{ID: 2, Name: "A"},
	}

	asc := Sort(products, SortNameAsc)
	require.Len(t, asc, 2)
	assert.Equal(t, "A", asc[0].Name)
	assert.Equal(t, "B", asc[1].Name)

	desc := Sort(products, SortNameDesc)
	assert.Equal(t, "B", desc[0].Name)
}

func TestSort_Name_CaseInsensitiveCollation(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Name: "oak table"},
		{ID: 2, Name: "Linen Chair"},
		{ID: 3, Name: "OTTOMAN"},
	}

	got := Sort(products, SortNameAsc)

	assert.Equal(t, []int64{2, 1, 3}, ids(got))
}

func TestSort_NewestFirst_DescendingID(t *testing.T) {
	got := Sort(sampleProducts(), SortNewestFirst)
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(got))
}

func TestSort_StableForEqualKeys(t *testing.T) {
	// Three products share a price; their relative order must survive.
	products := []catalog.Product{
		{ID: 10, Name: "First", Price: 100},
		{ID: 11, Name: "Cheap", Price: 50},
		{ID: 12, Name: "Second", Price: 100},
		{ID: 13, Name: "Third", Price: 100},
	}

	got := Sort(products, SortPriceAsc)

	assert.Equal(t, []int64{11, 10, 12, 13}, ids(got))
}

func TestSort_StableForEqualNames(t *testing.T) {
	products := []catalog.Product{
		{ID: 1, Name: "Bench"},
		{ID: 2, Name: "Bench"},
		{ID: 3, Name: "Armchair"},
	}

	got := Sort(products, SortNameAsc)

	assert.Equal(t, []int64{3, 1, 2}, ids(got))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	original := make([]catalog.Product, len(products))
	copy(original, products)

	Sort(products, SortPriceDesc)

	assert.Equal(t, original, products)
}

// ============================================
// ParseSortKey Tests
// ============================================

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		input    string
		expected SortKey
		wantErr  bool
	}{
		{"", SortDefault, false},
		{"default", SortDefault, false},
		{"price_asc", SortPriceAsc, false},
		{"price_desc", SortPriceDesc, false},
		{"name_asc", SortNameAsc, false},
		{"name_desc", SortNameDesc, false},
		{"newest", SortNewestFirst, false},
		{"popularity", SortDefault, true},
	}

	for _, tt := range tests {
		t.Run("key "+tt.input, func(t *testing.T) {
			got, err := ParseSortKey(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
