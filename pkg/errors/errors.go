// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// 地球統計学（クリギング）特有のエラー分類を構造化された形で提供します。
package errors

import (
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler func(w error)

	// デフォルトの警告出力はzerologのコンソールライターを使用する
	warnLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// NegativeVarianceWarningなどの警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// Warn は警告を発生させます。
// カスタムハンドラが設定されていない場合はzerologの構造化ログとして出力します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if warningHandler != nil {
		warningHandler(w)
		return
	}

	if obj, ok := w.(zerolog.LogObjectMarshaler); ok {
		warnLogger.Warn().EmbedObject(obj).Msg(w.Error())
		return
	}
	warnLogger.Warn().Err(w).Msg("gokrige warning")
}

// ===========================================================================
//
//	クリギング特有の警告型
//
// ===========================================================================

// NegativeVarianceWarning はクリギング分散が浮動小数点誤差の範囲で負になった場合の警告です。
// 分散は0にクランプされた上で報告されます。
type NegativeVarianceWarning struct {
	Variance float64
	X        float64
	Y        float64
}

func (w *NegativeVarianceWarning) Error() string {
	return fmt.Sprintf("kriging variance %.6g at (%.4f, %.4f) is negative within tolerance; clamped to 0", w.Variance, w.X, w.Y)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *NegativeVarianceWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("variance", w.Variance).
		Float64("x", w.X).
		Float64("y", w.Y).
		Str("type", "NegativeVarianceWarning")
}

// NewNegativeVarianceWarning は新しいNegativeVarianceWarningを作成します。
func NewNegativeVarianceWarning(variance, x, y float64) *NegativeVarianceWarning {
	return &NegativeVarianceWarning{Variance: variance, X: x, Y: y}
}

// AnomalyWarning はSimple Krigingの推定値が近傍値の観測範囲から大きく外れた場合の警告です。
// 不適切なglobal meanや悪条件の系を検出するための診断であり、エラーではありません。
type AnomalyWarning struct {
	Estimate  float64
	Min       float64
	Max       float64
	Tolerance float64
}

func (w *AnomalyWarning) Error() string {
	return fmt.Sprintf("simple kriging estimate %.6g falls outside neighbor range [%.6g, %.6g] (tolerance %.2f); check the supplied global mean", w.Estimate, w.Min, w.Max, w.Tolerance)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *AnomalyWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Float64("estimate", w.Estimate).
		Float64("neighbor_min", w.Min).
		Float64("neighbor_max", w.Max).
		Float64("tolerance", w.Tolerance).
		Str("type", "AnomalyWarning")
}

// NewAnomalyWarning は新しいAnomalyWarningを作成します。
func NewAnomalyWarning(estimate, min, max, tolerance float64) *AnomalyWarning {
	return &AnomalyWarning{Estimate: estimate, Min: min, Max: max, Tolerance: tolerance}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// InsufficientDataError は有効な系を構成するには点や近傍が少なすぎる場合のエラーです。
type InsufficientDataError struct {
	Op     string
	Needed int
	Got    int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("gokrige: %s: insufficient data. Need at least %d points, got %d", e.Op, e.Needed, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InsufficientDataError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("needed", e.Needed).
		Int("got", e.Got).
		Str("type", "InsufficientDataError")
}

// NewInsufficientDataError は新しいInsufficientDataErrorを作成し、スタックトレースを付与します。
func NewInsufficientDataError(op string, needed, got int) error {
	err := &InsufficientDataError{Op: op, Needed: needed, Got: got}
	return errors.WithStack(err)
}

// NoFeasibleModelError はセミバリオグラムのフィッティング探索が
// 有限かつ非負の誤差を持つ候補を一つも見つけられなかった場合のエラーです。
type NoFeasibleModelError struct {
	Op       string
	Families []string
	Reason   string
}

func (e *NoFeasibleModelError) Error() string {
	return fmt.Sprintf("gokrige: %s: no feasible semivariogram model among %v: %s", e.Op, e.Families, e.Reason)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NoFeasibleModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Strs("families", e.Families).
		Str("reason", e.Reason).
		Str("type", "NoFeasibleModelError")
}

// NewNoFeasibleModelError は新しいNoFeasibleModelErrorを作成し、スタックトレースを付与します。
func NewNoFeasibleModelError(op string, families []string, reason string) error {
	err := &NoFeasibleModelError{Op: op, Families: families, Reason: reason}
	return errors.WithStack(err)
}

// SingularSystemError はクリギング系の行列が特異または特異に近い場合のエラーです。
// 重複座標や共線的な近傍配置といった退化したジオメトリで発生します。
type SingularSystemError struct {
	Op   string
	Size int
	Err  error
}

func (e *SingularSystemError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gokrige: %s: singular kriging system of size %d (degenerate neighbor geometry): %v", e.Op, e.Size, e.Err)
	}
	return fmt.Sprintf("gokrige: %s: singular kriging system of size %d (degenerate neighbor geometry)", e.Op, e.Size)
}

func (e *SingularSystemError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *SingularSystemError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("size", e.Size).
		Str("type", "SingularSystemError")
}

// NewSingularSystemError は新しいSingularSystemErrorを作成し、スタックトレースを付与します。
func NewSingularSystemError(op string, size int, cause error) error {
	err := &SingularSystemError{Op: op, Size: size, Err: cause}
	return errors.WithStack(err)
}

// InvalidModelError はフィット済みまたは外部から与えられたモデルが
// 構造的に不可能な結果（例: 許容範囲を超えた負のクリギング分散）を生んだ場合のエラーです。
type InvalidModelError struct {
	Op     string
	Reason string
	Value  float64
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("gokrige: %s: invalid model: %s (value: %.6g)", e.Op, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *InvalidModelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("reason", e.Reason).
		Float64("value", e.Value).
		Str("type", "InvalidModelError")
}

// NewInvalidModelError は新しいInvalidModelErrorを作成し、スタックトレースを付与します。
func NewInvalidModelError(op, reason string, value float64) error {
	err := &InvalidModelError{Op: op, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// NotFittedError はモデルが未学習の状態で `Predict` などを呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("gokrige: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("gokrige: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
// 例えば、step_sizeに負の数を渡した場合など。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("gokrige: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// Newf は新しいフォーマット済みエラーを作成します。
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix は特異行列の場合のエラーです。
	ErrSingularMatrix = New("singular matrix")
)
