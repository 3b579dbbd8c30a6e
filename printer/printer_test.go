package printer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorReturnsTitleOnly(t *testing.T) {
	t.Run("no suggestions", func(t *testing.T) {
		err := Error("agent introuvable", "Aucun agent ne porte ce nom.", nil)
		require.Error(t, err)
		require.Equal(t, "agent introuvable", err.Error())
	})

	t.Run("single suggestion", func(t *testing.T) {
		err := Error("agent introuvable", "Aucun agent ne porte ce nom.", []string{
			"Lancez 'advisory agents' pour lister les agents enregistrés.",
		})
		require.Error(t, err)
		require.Equal(t, "agent introuvable", err.Error())
	})

	t.Run("multiple suggestions", func(t *testing.T) {
		err := Error("configuration invalide", "", []string{
			"Vérifiez la syntaxe du fichier.",
			"Supprimez le fichier pour repartir des valeurs par défaut.",
		})
		require.Error(t, err)
		require.Equal(t, "configuration invalide", err.Error())
	})
}
