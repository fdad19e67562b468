// Package itinerary はAIによる旅程生成を提供する。
package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/verona/verona/internal/model"
)

// TextGenerator は外部テキスト生成モデルへのインターフェース。
// テストではfakeに差し替える。
type TextGenerator interface {
	// GenerateText はプロンプトを送信し、モデルの生テキスト出力を返す。
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GenerateMetrics は生成結果の記録に必要なインターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type GenerateMetrics interface {
	RecordGenerateSuccess()
	RecordGenerateFailure(reason string)
	RecordGenerateLatency(duration time.Duration)
}

// Service は旅程生成のビジネスロジックを提供する。
// 生成結果はキャッシュせず、失敗時のリトライも行わない。
type Service struct {
	generator TextGenerator
	metrics   GenerateMetrics
	timeout   time.Duration
}

// NewService はServiceを生成する。
// timeoutは1回の生成呼び出しの上限時間。
func NewService(generator TextGenerator, metrics GenerateMetrics, timeout time.Duration) *Service {
	return &Service{
		generator: generator,
		metrics:   metrics,
		timeout:   timeout,
	}
}

// buildPrompt は目的地・スタイル・フィルターから単一の指示文を組み立てる。
// フィルターが指定されている場合のみ厳守句を挿入する。
// 各行程に実在のGPS座標を要求するが、出力の座標は検証しない。
func buildPrompt(place, styleSpec string, filterTags []string) string {
	filterClause := ""
	if len(filterTags) > 0 {
		filterClause = fmt.Sprintf("STRIKTNĚ DODRŽ FILTRY A SPORT: %s. ", strings.Join(filterTags, ", "))
	}

	return fmt.Sprintf(`Jsi architekt výletů VERONA. Navrhni výlet pro: %s. Styl: %s. %s
Vrať POUZE JSON: {"location": "Název", "stages": [{"time": "09:00", "place": "Název", "description": "Info", "lat": 50.08, "lng": 14.42}], "recommendation": "Tip", "type": "mesto", "difficulty": 2}
VŽDY vyplň reálné GPS souřadnice lat a lng!`, place, styleSpec, filterClause)
}

// extractJSON はモデル出力から最初の「{」から最後の「}」までの部分文字列を取り出す。
// モデルはJSONの前後に説明文やコードフェンスを付けがちなため、貪欲な
// 括弧マッチで本体だけを切り出す。括弧が見つからない場合はエラーを返す。
func extractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("no JSON object found in model output")
	}
	return raw[start : end+1], nil
}

// Generate は旅程を生成する。
// ネットワーク障害・JSON欠落・パース失敗はいずれもGENERATION_FAILEDに
// 集約され、呼び出し側にpanicが伝播することはない。
func (s *Service) Generate(ctx context.Context, place, styleSpec string, filterTags []string) (*model.Itinerary, error) {
	if strings.TrimSpace(place) == "" {
		return nil, model.NewInvalidRequestError("place is required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := buildPrompt(place, styleSpec, filterTags)

	start := time.Now()
	raw, err := s.generator.GenerateText(ctx, prompt)
	s.metrics.RecordGenerateLatency(time.Since(start))

	if err != nil {
		s.metrics.RecordGenerateFailure("upstream")
		slog.Error("itinerary generation call failed",
			slog.String("place", place),
			slog.String("error", err.Error()),
		)
		return nil, model.NewGenerationFailedError(err.Error())
	}

	payload, err := extractJSON(raw)
	if err != nil {
		s.metrics.RecordGenerateFailure("extract")
		slog.Warn("itinerary output had no JSON object", slog.String("place", place))
		return nil, model.NewGenerationFailedError("model returned no structured itinerary")
	}

	var itinerary model.Itinerary
	if err := json.Unmarshal([]byte(payload), &itinerary); err != nil {
		s.metrics.RecordGenerateFailure("parse")
		slog.Warn("itinerary output failed to parse",
			slog.String("place", place),
			slog.String("error", err.Error()),
		)
		return nil, model.NewGenerationFailedError("model returned malformed itinerary")
	}

	s.metrics.RecordGenerateSuccess()
	slog.Info("itinerary generated",
		slog.String("place", place),
		slog.Int("stages", len(itinerary.Stages)),
	)
	return &itinerary, nil
}
