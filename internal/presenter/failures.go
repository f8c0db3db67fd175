package presenter

import (
	"fmt"

	"github.com/gometeo/guide/internal/model"
)

type failureText struct {
	title     string
	condition string
	icon      string
}

var failureTexts = map[model.FailureKind]failureText{
	model.ConfigError:  {"API Key Needed", "Please provide your OpenWeatherMap API Key.", "🔑❌"},
	model.AuthError:    {"Error: Invalid API Key.", "Authorization Failed (401).", "🔑❌"},
	model.NotFound:     {"Error: Location Not Found.", "Invalid ZIP Code.", "📍❌"},
	model.DecodeError:  {"Error: Invalid API Response.", "Data received was not valid JSON.", "📄❌"},
	model.InvalidInput: {"Invalid Input", "Please enter a ZIP code.", "🚫"},
	model.Unknown:      {"Unexpected Error.", "Please check the console output.", "💣"},
}

// describeFailure возвращает тройку заголовок/условие/иконка для вида ошибки
func describeFailure(f *model.Failure) failureText {
	switch f.Kind {
	case model.NetworkError:
		if f.DNS {
			host := f.Host
			if host == "" {
				host = "the weather service"
			}
			return failureText{"Error: DNS Resolution Failed.", fmt.Sprintf("Cannot find %s.", host), "🌐❌"}
		}
		return failureText{"Error: Connection Failed.", "Check internet connection.", "🔌❌"}
	case model.Unknown:
		if f.RawStatus != nil {
			return failureText{"Error: HTTP Problem.", fmt.Sprintf("Server returned: %d", *f.RawStatus), "☁️❌"}
		}
	}

	if t, ok := failureTexts[f.Kind]; ok {
		return t
	}
	return failureTexts[model.Unknown]
}
