package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassesCatalogShape(t *testing.T) {
	require.Len(t, Classes, 3)
	for classe, info := range Classes {
		assert.Len(t, info.Armes, 6, "class %s", classe)
		assert.Len(t, info.Armures, 6, "class %s", classe)

		// Tiers are sorted: each one costs more and hits harder.
		for _, items := range [][]Item{info.Armes, info.Armures} {
			for i := 1; i < len(items); i++ {
				assert.Greater(t, items[i].Cost, items[i-1].Cost)
				assert.Greater(t, items[i].Power, items[i-1].Power)
				assert.GreaterOrEqual(t, items[i].MinLevel, items[i-1].MinLevel)
			}
		}
	}
}

func TestItemAt(t *testing.T) {
	item, ok := ItemAt(ClassChevalier, CategoryArme, 1)
	require.True(t, ok)
	assert.Equal(t, "Épée de bronze", item.Name)

	_, ok = ItemAt(ClassChevalier, CategoryArme, 0)
	assert.False(t, ok)
	_, ok = ItemAt(ClassChevalier, CategoryArme, 7)
	assert.False(t, ok)
	_, ok = ItemAt(Class("barde"), CategoryArme, 1)
	assert.False(t, ok)
	_, ok = ItemAt(ClassChevalier, Category("bouclier"), 1)
	assert.False(t, ok)
}

func TestFindItem(t *testing.T) {
	item, ok := FindItem(ClassMage, CategoryArmure, "Robe de novice")
	require.True(t, ok)
	assert.Equal(t, int64(100), item.Cost)

	_, ok = FindItem(ClassMage, CategoryArmure, "")
	assert.False(t, ok)
	_, ok = FindItem(ClassMage, CategoryArmure, "Épée de bronze")
	assert.False(t, ok)
}

func TestAchievementByID(t *testing.T) {
	a, ok := AchievementByID("first_steps")
	require.True(t, ok)
	assert.Equal(t, "Premiers pas", a.Name)

	_, ok = AchievementByID("unknown")
	assert.False(t, ok)
}
