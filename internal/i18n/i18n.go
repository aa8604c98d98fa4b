// Package i18n translates UI captions. The language comes from POMODORO_LANG
// or, when unset, from the system locale.
package i18n

import (
	"log"
	"os"
	"strings"
	"sync"

	"github.com/jeandeaual/go-locale"
)

const langEnv = "POMODORO_LANG"

var (
	langMu sync.RWMutex
	lang   string
)

var translations = map[string]map[string]string{
	"Work Session": {
		"pt": "Sessão de trabalho",
		"es": "Sesión de trabajo",
		"ru": "Рабочая сессия",
	},
	"Break Time": {
		"pt": "Hora do intervalo",
		"es": "Hora del descanso",
		"ru": "Перерыв",
	},
	"Start": {
		"pt": "Iniciar",
		"es": "Iniciar",
		"ru": "Старт",
	},
	"Resume": {
		"pt": "Retomar",
		"es": "Reanudar",
		"ru": "Продолжить",
	},
	"Pause": {
		"pt": "Pausar",
		"es": "Pausar",
		"ru": "Пауза",
	},
	"Reset": {
		"pt": "Resetar",
		"es": "Reiniciar",
		"ru": "Сброс",
	},
	"Skip phase": {
		"pt": "Pular fase",
		"es": "Saltar fase",
		"ru": "Пропустить фазу",
	},
	"Settings": {
		"pt": "Configurações",
		"es": "Ajustes",
		"ru": "Настройки",
	},
	"Work (minutes)": {
		"pt": "Trabalho (minutos)",
		"es": "Trabajo (minutos)",
		"ru": "Работа (минуты)",
	},
	"Break (minutes)": {
		"pt": "Intervalo (minutos)",
		"es": "Descanso (minutos)",
		"ru": "Перерыв (минуты)",
	},
	"Save": {
		"pt": "Salvar",
		"es": "Guardar",
		"ru": "Сохранить",
	},
	"Cancel": {
		"pt": "Cancelar",
		"es": "Cancelar",
		"ru": "Отмена",
	},
	"Quit": {
		"pt": "Sair",
		"es": "Salir",
		"ru": "Выход",
	},
	"Work": {
		"pt": "Trabalho",
		"es": "Trabajo",
		"ru": "Работа",
	},
	"Break": {
		"pt": "Intervalo",
		"es": "Descanso",
		"ru": "Перерыв",
	},
	"paused": {
		"pt": "pausado",
		"es": "en pausa",
		"ru": "пауза",
	},
}

func detect() string {
	if forcedLang := strings.TrimSpace(os.Getenv(langEnv)); forcedLang != "" {
		log.Printf("%s is set to: '%s'", langEnv, forcedLang)
		return normalize(forcedLang)
	}

	userLocales, err := locale.GetLocales()
	if err != nil {
		log.Printf("could not get user locale, defaulting to english: %v", err)
		return "en"
	}
	if len(userLocales) == 0 {
		log.Println("no user locale detected, defaulting to english")
		return "en"
	}

	log.Printf("detected user locale: %s", userLocales[0])
	return normalize(userLocales[0])
}

func normalize(tag string) string {
	tag = strings.ToLower(tag)
	for _, supported := range []string{"pt", "es", "ru"} {
		if strings.HasPrefix(tag, supported) {
			return supported
		}
	}
	return "en"
}

// T returns the translation of key, or key itself when none exists.
func T(key string) string {
	if translated, ok := translations[key][Lang()]; ok {
		return translated
	}
	return key
}

// Lang returns the active language code.
func Lang() string {
	langMu.RLock()
	current := lang
	langMu.RUnlock()
	if current != "" {
		return current
	}

	langMu.Lock()
	defer langMu.Unlock()
	if lang == "" {
		lang = detect()
	}
	return lang
}

// SetLang overrides the active language.
func SetLang(code string) {
	langMu.Lock()
	defer langMu.Unlock()
	lang = normalize(code)
}
