// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/expo-parsely/engagement-tracker/pkg/bridge"
)

// InitBridge builds the analytics bridge chain and initializes it for siteID.
//
// Calls flow through three layers:
//   - Parameterized merges the common parameters into page views and
//     engagement starts.
//   - Instrumented opens a span per call and reports it to recorder.
//   - LogBridge records the call as a structured log entry.
//
// To target a real analytics backend, replace the LogBridge with another
// bridge.Bridge implementation.
func InitBridge(ctx context.Context, siteID string, params bridge.CommonParameters, recorder bridge.CallRecorder) (*bridge.Parameterized, error) {
	if siteID == "" {
		siteID = params.SiteID
	}
	params.SiteID = siteID

	base := bridge.NewLogBridge(logrus.StandardLogger())
	chain := bridge.NewParameterized(bridge.NewInstrumented(base, recorder))
	chain.SetCommonParameters(params)

	if err := chain.Init(ctx, siteID); err != nil {
		return nil, fmt.Errorf("failed to initialize bridge for site %q: %w", siteID, err)
	}

	logrus.Infof("initialized analytics bridge for site %s", siteID)
	return chain, nil
}
