// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"

	"github.com/contriboss/xsolve/internal/logging"
)

type loggerKey struct{}

func withLogger(ctx context.Context, log *logging.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, log)
}

func loggerFromContext(ctx context.Context) *logging.Logger {
	if ctx == nil {
		return nil
	}
	log, _ := ctx.Value(loggerKey{}).(*logging.Logger)
	return log
}
