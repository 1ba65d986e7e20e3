package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseInventoryCSV(t *testing.T) {
	path := writeTempCSV(t, `name,category,quantity,unit,lowStockThreshold
Gauze,Insumos generales,50,box,10
Gloves,Insumos generales,80,box,
Sutures,Cirugía,15,box,5
`)

	rows, err := ParseInventoryCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Gauze", rows[0].Name)
	assert.Equal(t, "Insumos generales", rows[0].Category)
	assert.Equal(t, 50, rows[0].Quantity)
	assert.Equal(t, "box", rows[0].Unit)
	require.NotNil(t, rows[0].LowStockThreshold)
	assert.Equal(t, 10, *rows[0].LowStockThreshold)

	// Empty threshold column means no threshold
	assert.Nil(t, rows[1].LowStockThreshold)

	assert.Equal(t, "Cirugía", rows[2].Category)
}

func TestParseInventoryCSVColumnOrderIndependent(t *testing.T) {
	path := writeTempCSV(t, `unit,quantity,name,category
box,25,Masks,Insumos generales
`)

	rows, err := ParseInventoryCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Masks", rows[0].Name)
	assert.Equal(t, 25, rows[0].Quantity)
	assert.Equal(t, "box", rows[0].Unit)
}

func TestParseInventoryCSVSkipsNamelessRows(t *testing.T) {
	path := writeTempCSV(t, `name,category,quantity,unit
,Insumos generales,5,box
Bibs,Insumos generales,30,pack
`)

	rows, err := ParseInventoryCSV(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bibs", rows[0].Name)
}

func TestParseInventoryCSVHeaderOnly(t *testing.T) {
	path := writeTempCSV(t, "name,category,quantity,unit\n")

	_, err := ParseInventoryCSV(path)
	assert.Error(t, err)
}
